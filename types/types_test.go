package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressJSON(t *testing.T) {
	tests := []struct {
		name string
		in   Progress
		want string
	}{
		{name: "unseen", in: Unseen(), want: `{"kind":"none"}`},
		{name: "paragraph", in: UntilParagraph(4), want: `{"kind":"until_paragraph","n":4}`},
		{name: "second", in: UntilSecond(90), want: `{"kind":"until_second","n":90}`},
		{name: "fully drops stray position", in: Progress{Kind: ProgressFully, N: 7}, want: `{"kind":"fully"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.in)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))

			var back Progress
			require.NoError(t, json.Unmarshal(b, &back))
			assert.True(t, tt.in.Equal(back))
		})
	}
}

func TestProgressJSONRejects(t *testing.T) {
	for _, raw := range []string{
		`{"kind":"halfway"}`,
		`{"kind":"until_second","n":-1}`,
		`"fully"`,
	} {
		var p Progress
		assert.Error(t, json.Unmarshal([]byte(raw), &p), raw)
	}
}

func TestProgressZeroValueIsUnseen(t *testing.T) {
	var p Progress
	assert.True(t, p.IsNone())
	assert.True(t, p.Equal(Unseen()))
	assert.False(t, UntilParagraph(1).Equal(UntilParagraph(2)))
}

func TestArticleBodyJSON(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	bodies := []Body{
		Text{Content: "<p>hi</p>"},
		Audio{Media: MediaLink{URL: "https://cdn.example/ep.mp3", MimeType: "audio/mpeg", Downloaded: true}},
		Video{Media: MediaLink{URL: "https://cdn.example/clip.mp4", MimeType: "video/mp4"}},
		YouTubeLink{URL: "https://www.youtube.com/watch?v=abc"},
		nil,
	}

	for _, body := range bodies {
		a := Article{
			ID:      "id-1",
			Name:    "Episode",
			Link:    StringPtr("https://example.com/1"),
			Created: &created,
			Viewed:  UntilSecond(12),
			Body:    body,
		}
		b, err := json.Marshal(a)
		require.NoError(t, err)

		var back Article
		require.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(t, a.Body, back.Body)
		assert.Equal(t, a.ID, back.ID)
		assert.True(t, a.Viewed.Equal(back.Viewed))
		assert.True(t, created.Equal(*back.Created))
		assert.Nil(t, back.Updated)
	}
}

func TestArticleBodyJSONShape(t *testing.T) {
	b, err := json.Marshal(Article{ID: "x", Name: "n", Body: YouTubeLink{URL: "https://youtu.be/x"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"x","name":"n","viewed":{"kind":"none"},"body":{"kind":"youtube_link","url":"https://youtu.be/x"}}`, string(b))

	var a Article
	assert.Error(t, json.Unmarshal([]byte(`{"id":"x","body":{"kind":"audio"}}`), &a))
	assert.Error(t, json.Unmarshal([]byte(`{"id":"x","body":{"kind":"podcast"}}`), &a))
}

func TestMediaHelpers(t *testing.T) {
	m := MediaLink{URL: "https://cdn.example/a.ogg", MimeType: "audio/ogg"}

	got, ok := MediaOf(Audio{Media: m})
	require.True(t, ok)
	assert.Equal(t, m, got)

	_, ok = MediaOf(Text{})
	assert.False(t, ok)

	m.Downloaded = true
	assert.Equal(t, Video{Media: m}, WithMedia(Video{}, m))
	assert.Equal(t, Text{Content: "x"}, WithMedia(Text{Content: "x"}, m))
}

func TestArticleViewJSON(t *testing.T) {
	v := ArticleView{
		Article: Article{ID: "a", Name: "Post", Body: Text{Content: "x"}, Viewed: Fully()},
		Display: "viewed Post (article)",
	}

	b, err := json.Marshal(v)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(b, &fields))
	assert.Equal(t, "a", fields["id"])
	assert.Equal(t, "viewed Post (article)", fields["display"])
	assert.Equal(t, []any{}, fields["tags"])

	var back ArticleView
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, v.Article.Body, back.Article.Body)
	assert.True(t, back.Article.Viewed.IsFully())
	assert.Equal(t, v.Display, back.Display)
	assert.Empty(t, back.Tags)
}

func TestGenerateIDStable(t *testing.T) {
	assert.Equal(t, GenerateID("https://example.com/1"), GenerateID("https://example.com/1"))
	assert.NotEqual(t, GenerateID("https://example.com/1"), GenerateID("https://example.com/2"))
	assert.Len(t, GenerateID("x"), 16)
	assert.Nil(t, StringPtr(""))
}
