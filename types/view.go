package types

import "encoding/json"

// ArticleView is an article as the HTTP API serves it: the article's own
// fields plus its one-line rendering and tags, flattened into one object.
type ArticleView struct {
	Article Article
	Display string
	Tags    []string
}

type viewExtras struct {
	Display string   `json:"display"`
	Tags    []string `json:"tags"`
}

func (v ArticleView) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(v.Article)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}

	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}
	if fields["display"], err = json.Marshal(v.Display); err != nil {
		return nil, err
	}
	if fields["tags"], err = json.Marshal(tags); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

func (v *ArticleView) UnmarshalJSON(data []byte) error {
	var extras viewExtras
	if err := json.Unmarshal(data, &extras); err != nil {
		return err
	}
	var a Article
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*v = ArticleView{Article: a, Display: extras.Display, Tags: extras.Tags}
	return nil
}
