package vmap

import (
	"strings"
	"testing"

	"adradar/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func videoAd(id, url string) entity.MatchedAd {
	return entity.MatchedAd{
		AdID: id,
		Metadata: map[string]string{
			entity.MetaDescription: "Coffee shop " + id,
			entity.MetaVideoURL:    url,
		},
	}
}

func TestEmptyManifest_MinimalRootDocument(t *testing.T) {
	assert.Equal(t,
		`<vmap:VMAP xmlns:vmap="http://www.iab.net/videosuite/vmap" version="1.0"></vmap:VMAP>`,
		EmptyManifest(),
	)
}

func TestRender_LastAdRepeatsAcrossRemainingBreaks(t *testing.T) {
	ads := []entity.MatchedAd{videoAd("a1", "http://localhost:8080/api/ads/a1/video")}
	offsets := []string{"start", "00:00:20.000", "00:00:40.000"}

	doc := Render(ads, offsets)

	assert.Equal(t, 3, strings.Count(doc, "<vmap:AdBreak "))
	assert.Equal(t, 3, strings.Count(doc, "http://localhost:8080/api/ads/a1/video"))
}

func TestRender_PairsBreaksWithAdsByIndex(t *testing.T) {
	ads := []entity.MatchedAd{
		videoAd("a1", "http://ads/1.mp4"),
		videoAd("a2", "http://ads/2.mp4"),
		videoAd("a3", "http://ads/3.mp4"),
	}
	offsets := []string{"start", "00:00:20.000", "00:00:40.000"}

	doc := Render(ads, offsets)

	first := strings.Index(doc, "http://ads/1.mp4")
	second := strings.Index(doc, "http://ads/2.mp4")
	third := strings.Index(doc, "http://ads/3.mp4")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	require.NotEqual(t, -1, third)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestRender_BreakIdentifiers(t *testing.T) {
	ads := []entity.MatchedAd{videoAd("a1", "http://ads/1.mp4")}

	doc := Render(ads, []string{"start", "00:00:20.000", "00:00:40.000"})
	assert.Contains(t, doc, `breakId="preroll"`)
	assert.Contains(t, doc, `breakId="midroll1"`)
	assert.Contains(t, doc, `breakId="midroll2"`)

	// "end" is never scheduled today but the renderer keeps the branch.
	doc = Render(ads, []string{"end"})
	assert.Contains(t, doc, `breakId="postroll"`)
}

func TestRender_ZeroAdsStillWellFormed(t *testing.T) {
	offsets := []string{"start", "00:00:15.000"}

	doc := Render(nil, offsets)

	assert.Equal(t, 2, strings.Count(doc, "<vmap:AdBreak "))
	assert.Equal(t, 2, strings.Count(doc, "</vmap:AdBreak>"))
	assert.NotContains(t, doc, "<Linear>")
	assert.NotContains(t, doc, "<CompanionAds>")
	assert.Equal(t, 2, strings.Count(doc, "No videoUrl or imageUrl provided"))
	assert.True(t, strings.HasPrefix(doc, `<vmap:VMAP xmlns:vmap="http://www.iab.net/videosuite/vmap" version="1.0">`))
	assert.True(t, strings.HasSuffix(doc, `</vmap:VMAP>`))
}

func TestRender_ImageOnlyAdGetsStubLinearAndCompanion(t *testing.T) {
	ads := []entity.MatchedAd{{
		AdID: "a1",
		Metadata: map[string]string{
			entity.MetaDescription: "Bakery",
			entity.MetaImageURL:    "http://localhost:8080/api/ads/a1/image",
		},
	}}

	doc := Renderer{StubLinearURL: "http://cdn.example.com/blank-15s.webm"}.Render(ads, []string{"start"})

	assert.Contains(t, doc, `type="video/webm"`)
	assert.Contains(t, doc, "http://cdn.example.com/blank-15s.webm")
	assert.Contains(t, doc, `<Companion width="640" height="375">`)
	assert.Contains(t, doc, `creativeType="image/jpeg"`)
	assert.Contains(t, doc, "http://localhost:8080/api/ads/a1/image")
}

func TestRender_StubMediaTypeFromExtension(t *testing.T) {
	ads := []entity.MatchedAd{{
		AdID:     "a1",
		Metadata: map[string]string{entity.MetaImageURL: "http://ads/a1.png"},
	}}

	doc := Renderer{StubLinearURL: "http://cdn.example.com/blank-15s.mp4"}.Render(ads, []string{"start"})
	assert.Contains(t, doc, `type="video/mp4"`)

	// Default stub is webm.
	doc = Render(ads, []string{"start"})
	assert.Contains(t, doc, DefaultStubLinearURL)
	assert.Contains(t, doc, `type="video/webm"`)
}

func TestRender_CompanionMediaTypeFromExtension(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{url: "http://ads/a.png", want: "image/png"},
		{url: "http://ads/a.GIF", want: "image/gif"},
		{url: "http://ads/a.jpg", want: "image/jpeg"},
		{url: "http://ads/a", want: "image/jpeg"},
	}

	for _, tt := range tests {
		ads := []entity.MatchedAd{{
			AdID:     "a1",
			Metadata: map[string]string{entity.MetaImageURL: tt.url},
		}}
		doc := Render(ads, []string{"start"})
		assert.Contains(t, doc, `creativeType="`+tt.want+`"`, tt.url)
	}
}

func TestRender_VideoAdCarriesCompanionWhenImagePresent(t *testing.T) {
	ads := []entity.MatchedAd{{
		AdID: "a1",
		Metadata: map[string]string{
			entity.MetaVideoURL: "http://ads/a1.mp4",
			entity.MetaImageURL: "http://ads/a1.png",
		},
	}}

	doc := Render(ads, []string{"start"})

	assert.Contains(t, doc, "<Duration>00:00:15.000</Duration>")
	assert.Contains(t, doc, "http://ads/a1.mp4")
	assert.Contains(t, doc, `creativeType="image/png"`)
}

func TestRender_Deterministic(t *testing.T) {
	ads := []entity.MatchedAd{videoAd("a1", "http://ads/1.mp4")}
	offsets := Schedule(60)

	assert.Equal(t, Render(ads, offsets), Render(ads, offsets))
}
