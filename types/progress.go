package types

import (
	"encoding/json"
	"fmt"
)

// ProgressKind enumerates viewing states
type ProgressKind int

const (
	ProgressNone ProgressKind = iota
	ProgressUntilParagraph
	ProgressUntilSecond
	ProgressFully
)

var progressNames = map[ProgressKind]string{
	ProgressNone:           "none",
	ProgressUntilParagraph: "until_paragraph",
	ProgressUntilSecond:    "until_second",
	ProgressFully:          "fully",
}

func (k ProgressKind) String() string {
	if name, ok := progressNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ProgressKind(%d)", int(k))
}

// ParseProgressKind is the inverse of ProgressKind.String.
func ParseProgressKind(s string) (ProgressKind, error) {
	for k, name := range progressNames {
		if name == s {
			return k, nil
		}
	}
	return ProgressNone, fmt.Errorf("unknown progress kind %q", s)
}

// Progress is a reader's viewing state for one article. N is only meaningful
// for UntilParagraph and UntilSecond. The zero value is None.
type Progress struct {
	Kind ProgressKind
	N    int
}

func Unseen() Progress              { return Progress{Kind: ProgressNone} }
func UntilParagraph(n int) Progress { return Progress{Kind: ProgressUntilParagraph, N: n} }
func UntilSecond(n int) Progress    { return Progress{Kind: ProgressUntilSecond, N: n} }
func Fully() Progress               { return Progress{Kind: ProgressFully} }

func (p Progress) IsNone() bool  { return p.Kind == ProgressNone }
func (p Progress) IsFully() bool { return p.Kind == ProgressFully }

// Equal ignores N for kinds that carry no position.
func (p Progress) Equal(o Progress) bool { return p.normalized() == o.normalized() }

func (p Progress) hasPosition() bool {
	return p.Kind == ProgressUntilParagraph || p.Kind == ProgressUntilSecond
}

func (p Progress) normalized() Progress {
	if !p.hasPosition() {
		p.N = 0
	}
	return p
}

type progressJSON struct {
	Kind string `json:"kind"`
	N    int    `json:"n,omitempty"`
}

func (p Progress) MarshalJSON() ([]byte, error) {
	p = p.normalized()
	return json.Marshal(progressJSON{Kind: p.Kind.String(), N: p.N})
}

func (p *Progress) UnmarshalJSON(data []byte) error {
	var raw progressJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	kind, err := ParseProgressKind(raw.Kind)
	if err != nil {
		return err
	}
	if raw.N < 0 {
		return fmt.Errorf("negative progress position %d", raw.N)
	}
	*p = Progress{Kind: kind, N: raw.N}.normalized()
	return nil
}
