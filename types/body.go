package types

import (
	"encoding/json"
	"fmt"
)

// BodyKind names an ArticleBody variant
type BodyKind string

const (
	KindText        BodyKind = "text"
	KindAudio       BodyKind = "audio"
	KindVideo       BodyKind = "video"
	KindYouTubeLink BodyKind = "youtube_link"
)

// Body is the closed set of article payloads: Text, Audio, Video or YouTubeLink.
type Body interface {
	Kind() BodyKind
	isBody()
}

// MediaLink points at a downloadable media attachment
type MediaLink struct {
	URL        string `json:"url"`
	MimeType   string `json:"mime_type"`
	Downloaded bool   `json:"downloaded"`
}

type Text struct {
	Content string
}

type Audio struct {
	Media MediaLink
}

type Video struct {
	Media MediaLink
}

// YouTubeLink references a hosted video; there is no local media payload.
type YouTubeLink struct {
	URL string
}

func (Text) Kind() BodyKind        { return KindText }
func (Audio) Kind() BodyKind       { return KindAudio }
func (Video) Kind() BodyKind       { return KindVideo }
func (YouTubeLink) Kind() BodyKind { return KindYouTubeLink }

func (Text) isBody()        {}
func (Audio) isBody()       {}
func (Video) isBody()       {}
func (YouTubeLink) isBody() {}

// MediaOf returns the media link of an Audio or Video body.
func MediaOf(b Body) (MediaLink, bool) {
	switch v := b.(type) {
	case Audio:
		return v.Media, true
	case Video:
		return v.Media, true
	default:
		return MediaLink{}, false
	}
}

// WithMedia returns b with its media link replaced. Bodies without media are returned unchanged.
func WithMedia(b Body, m MediaLink) Body {
	switch b.(type) {
	case Audio:
		return Audio{Media: m}
	case Video:
		return Video{Media: m}
	default:
		return b
	}
}

type bodyJSON struct {
	Kind    BodyKind   `json:"kind"`
	Content string     `json:"content,omitempty"`
	Media   *MediaLink `json:"media,omitempty"`
	URL     string     `json:"url,omitempty"`
}

func encodeBody(b Body) (*bodyJSON, error) {
	switch v := b.(type) {
	case nil:
		return nil, nil
	case Text:
		return &bodyJSON{Kind: KindText, Content: v.Content}, nil
	case Audio:
		m := v.Media
		return &bodyJSON{Kind: KindAudio, Media: &m}, nil
	case Video:
		m := v.Media
		return &bodyJSON{Kind: KindVideo, Media: &m}, nil
	case YouTubeLink:
		return &bodyJSON{Kind: KindYouTubeLink, URL: v.URL}, nil
	default:
		return nil, fmt.Errorf("unknown body type %T", b)
	}
}

func decodeBody(raw *bodyJSON) (Body, error) {
	if raw == nil {
		return nil, nil
	}
	switch raw.Kind {
	case KindText:
		return Text{Content: raw.Content}, nil
	case KindAudio, KindVideo:
		if raw.Media == nil {
			return nil, fmt.Errorf("%s body without media", raw.Kind)
		}
		if raw.Kind == KindAudio {
			return Audio{Media: *raw.Media}, nil
		}
		return Video{Media: *raw.Media}, nil
	case KindYouTubeLink:
		return YouTubeLink{URL: raw.URL}, nil
	default:
		return nil, fmt.Errorf("unknown body kind %q", raw.Kind)
	}
}

// articleAlias drops the methods of Article so the JSON codecs below don't recurse.
type articleAlias Article

type articleJSON struct {
	articleAlias
	Body *bodyJSON `json:"body,omitempty"`
}

// MarshalJSON encodes the body variant as a tagged object.
func (a Article) MarshalJSON() ([]byte, error) {
	body, err := encodeBody(a.Body)
	if err != nil {
		return nil, err
	}
	return json.Marshal(articleJSON{articleAlias: articleAlias(a), Body: body})
}

func (a *Article) UnmarshalJSON(data []byte) error {
	var raw articleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	body, err := decodeBody(raw.Body)
	if err != nil {
		return err
	}
	*a = Article(raw.articleAlias)
	a.Body = body
	return nil
}
