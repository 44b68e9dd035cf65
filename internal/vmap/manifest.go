package vmap

import (
	"strconv"
	"strings"

	"adradar/internal/domain/entity"
)

const (
	vmapHeader = `<vmap:VMAP xmlns:vmap="http://www.iab.net/videosuite/vmap" version="1.0">`
	vmapFooter = `</vmap:VMAP>`

	// DefaultStubLinearURL is the fallback placeholder clip for image-only ads.
	DefaultStubLinearURL = "http://localhost:8080/blank-15s.webm"

	// Companion slot size, kept in sync with the player CSS.
	companionWidth  = 640
	companionHeight = 375

	linearDuration = "00:00:15.000"
)

// metaStubLinearURL lets an ad override the placeholder clip per record.
const metaStubLinearURL = "stubLinearUrl"

// Renderer assembles VMAP documents from matched ads and scheduled offsets.
type Renderer struct {
	// StubLinearURL is the placeholder linear clip used when an ad has only
	// an image creative. Empty means DefaultStubLinearURL.
	StubLinearURL string
}

// EmptyManifest returns the minimal well-formed document with no breaks.
func EmptyManifest() string {
	return `<vmap:VMAP xmlns:vmap="http://www.iab.net/videosuite/vmap" version="1.0"></vmap:VMAP>`
}

// Render pairs each scheduled offset with a matched ad and emits one AdBreak
// per offset. When breaks outnumber ads the last ad is repeated; with zero ads
// every break is rendered without creatives. Render has no failure path.
func Render(ads []entity.MatchedAd, timeOffsets []string) string {
	return Renderer{}.Render(ads, timeOffsets)
}

// Render implements the document assembly. See the package-level Render.
func (r Renderer) Render(ads []entity.MatchedAd, timeOffsets []string) string {
	var sb strings.Builder
	sb.WriteString(vmapHeader)
	sb.WriteString("\n")

	// Loop over the requested break times, not the number of ads.
	for i, timeOffset := range timeOffsets {
		var attrs map[string]string
		if len(ads) > 0 {
			attrs = ads[min(i, len(ads)-1)].Metadata
		}

		r.writeAdBreak(&sb, i, timeOffset, attrs)
	}

	sb.WriteString(vmapFooter)

	return sb.String()
}

func (r Renderer) writeAdBreak(sb *strings.Builder, i int, timeOffset string, attrs map[string]string) {
	videoURL := attrs[entity.MetaVideoURL]
	imageURL := attrs[entity.MetaImageURL]

	hasVideo := strings.TrimSpace(videoURL) != ""
	hasImage := strings.TrimSpace(imageURL) != ""

	sb.WriteString(`  <vmap:AdBreak timeOffset="` + timeOffset +
		`" breakType="linear" breakId="` + breakID(i, timeOffset) + "\">\n" +
		"    <vmap:AdSource>\n" +
		"      <vmap:VASTAdData>\n" +
		"        <VAST version=\"3.0\">\n" +
		"          <Ad>\n" +
		"            <InLine>\n" +
		"              <AdSystem>Hyperlocal POC</AdSystem>\n" +
		"              <AdTitle>" + adTitle(attrs) + "</AdTitle>\n" +
		"              <Creatives>\n")

	// Linear creative: real video, or a stub clip so an image-only ad still
	// satisfies a linear slot.
	switch {
	case hasVideo:
		r.writeLinear(sb, videoURL, "video/mp4")
	case hasImage:
		stubURL := attrs[metaStubLinearURL]
		if stubURL == "" {
			stubURL = r.StubLinearURL
		}
		if stubURL == "" {
			stubURL = DefaultStubLinearURL
		}
		r.writeLinear(sb, stubURL, stubMediaType(stubURL))
	default:
		sb.WriteString("                <!-- No videoUrl or imageUrl provided for this ad -->\n")
	}

	// Companion (static image) alongside the linear, whenever an image exists.
	if hasImage {
		sb.WriteString("                <Creative>\n" +
			"                  <CompanionAds>\n" +
			"                    <Companion width=\"" + strconv.Itoa(companionWidth) +
			"\" height=\"" + strconv.Itoa(companionHeight) + "\">\n" +
			"                      <StaticResource creativeType=\"" + imageMediaType(imageURL) + "\">\n" +
			"                        <![CDATA[" + imageURL + "]]>\n" +
			"                      </StaticResource>\n" +
			"                    </Companion>\n" +
			"                  </CompanionAds>\n" +
			"                </Creative>\n")
	}

	sb.WriteString("              </Creatives>\n" +
		"            </InLine>\n" +
		"          </Ad>\n" +
		"        </VAST>\n" +
		"      </vmap:VASTAdData>\n" +
		"    </vmap:AdSource>\n" +
		"  </vmap:AdBreak>\n")
}

func (r Renderer) writeLinear(sb *strings.Builder, mediaURL, mediaType string) {
	sb.WriteString("                <Creative>\n" +
		"                  <Linear>\n" +
		"                    <Duration>" + linearDuration + "</Duration>\n" +
		"                    <MediaFiles>\n" +
		"                      <MediaFile delivery=\"progressive\" type=\"" + mediaType + "\">\n" +
		"                        <![CDATA[" + mediaURL + "]]>\n" +
		"                      </MediaFile>\n" +
		"                    </MediaFiles>\n" +
		"                  </Linear>\n" +
		"                </Creative>\n")
}

// breakID derives a human-readable break identifier from the offset.
func breakID(i int, timeOffset string) string {
	switch timeOffset {
	case OffsetStart:
		return "preroll"
	case OffsetEnd:
		return "postroll"
	default:
		return "midroll" + strconv.Itoa(i)
	}
}

func adTitle(attrs map[string]string) string {
	if title, ok := attrs[entity.MetaDescription]; ok && title != "" {
		return title
	}

	return "Ad"
}

// stubMediaType infers the stub clip's media type from its file extension.
func stubMediaType(stubURL string) string {
	if strings.HasSuffix(strings.ToLower(stubURL), ".webm") {
		return "video/webm"
	}

	return "video/mp4"
}

// imageMediaType infers a companion media type from the image URL extension.
func imageMediaType(imageURL string) string {
	lower := strings.ToLower(imageURL)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".gif"):
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
