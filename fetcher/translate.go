package fetcher

import (
	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"
	"github.com/mmcdole/gofeed/rss"
)

// gofeed fills Item.Published from <updated> (Atom) or <dc:date> (RSS) when the
// entry has no published date. These translators keep only the entry's own
// <published>/<pubDate> so an undated entry stays undated.

type rssTranslator struct {
	gofeed.DefaultRSSTranslator
}

func (t *rssTranslator) Translate(feed interface{}) (*gofeed.Feed, error) {
	result, err := t.DefaultRSSTranslator.Translate(feed)
	if err != nil {
		return nil, err
	}
	src, ok := feed.(*rss.Feed)
	if !ok || len(src.Items) != len(result.Items) {
		return result, nil
	}
	for i, item := range src.Items {
		result.Items[i].Published = item.PubDate
	}
	return result, nil
}

type atomTranslator struct {
	gofeed.DefaultAtomTranslator
}

func (t *atomTranslator) Translate(feed interface{}) (*gofeed.Feed, error) {
	result, err := t.DefaultAtomTranslator.Translate(feed)
	if err != nil {
		return nil, err
	}
	src, ok := feed.(*atom.Feed)
	if !ok || len(src.Entries) != len(result.Items) {
		return result, nil
	}
	for i, entry := range src.Entries {
		result.Items[i].Published = entry.Published
	}
	return result, nil
}
