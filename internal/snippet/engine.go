package snippet

import (
	"fmt"
	"sort"

	"hxls/internal/registry"
	"hxls/internal/variables"

	"github.com/lithammer/fuzzysearch/fuzzy"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type candidate struct {
	prefix  string
	rank    int
	snippet registry.Snippet
}

// Complete ranks the snippets whose prefix fuzzily matches typed and
// renders them as LSP completion items. An empty typed prefix offers the
// whole set. Matching is subsequence-aware and case-insensitive; ties
// break lexicographically by prefix.
func Complete(snippets []registry.Snippet, typed string, ctx *variables.Context) []protocol.CompletionItem {
	var matched []candidate
	for _, s := range snippets {
		if best, ok := match(s.Prefix, typed); ok {
			matched = append(matched, candidate{prefix: best.prefix, rank: best.rank, snippet: s})
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].rank != matched[j].rank {
			return matched[i].rank < matched[j].rank
		}
		return matched[i].prefix < matched[j].prefix
	})

	items := make([]protocol.CompletionItem, 0, len(matched))
	for i, c := range matched {
		items = append(items, completionItem(c, i, ctx))
	}
	return items
}

func match(prefixes registry.StrOrSeq, typed string) (candidate, bool) {
	if typed == "" {
		if len(prefixes) == 0 {
			return candidate{}, false
		}
		return candidate{prefix: prefixes.First()}, true
	}

	ranks := fuzzy.RankFindFold(typed, prefixes)
	if len(ranks) == 0 {
		return candidate{}, false
	}
	sort.Sort(ranks)
	return candidate{prefix: ranks[0].Target, rank: ranks[0].Distance}, true
}

func completionItem(c candidate, order int, ctx *variables.Context) protocol.CompletionItem {
	kind := protocol.CompletionItemKindSnippet
	format := protocol.InsertTextFormatSnippet
	insert := Render(Tokenize(c.snippet.Body.String()), ctx)
	sortText := fmt.Sprintf("%05d", order)

	item := protocol.CompletionItem{
		Label:            c.prefix,
		Kind:             &kind,
		InsertText:       &insert,
		InsertTextFormat: &format,
		SortText:         &sortText,
		FilterText:       &c.prefix,
	}
	if detail := c.snippet.Name; detail != "" {
		item.Detail = &detail
	}
	if doc := c.snippet.Description.String(); doc != "" {
		item.Documentation = doc
	}
	return item
}
