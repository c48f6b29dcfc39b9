package io

import (
	"github.com/matzehuels/instantview/pkg/core/text"
)

// Keys that carry a span target next to the style key.
const (
	hrefKey = "href"
	nameKey = "name"
)

// spanKeys fixes the lookup order when a node carries several style keys.
var spanKeys = []string{"bold", "italic", "underline", "strike", "fixed", "url", "anchor"}

// decodeRich converts a decoded rich-text value. Values it cannot interpret
// become [text.Empty]; depth is checked separately by richDepth.
func decodeRich(v any, depth int) text.RichText {
	if depth > MaxDepth {
		return text.Empty{}
	}
	switch n := v.(type) {
	case nil:
		return text.Empty{}
	case string:
		if n == "" {
			return text.Empty{}
		}
		return text.Plain(n)
	case map[string]any:
		return decodeRichNode(n, depth)
	}
	if parts, ok := asList(v); ok {
		out := make(text.Concat, 0, len(parts))
		for _, p := range parts {
			out = append(out, decodeRich(p, depth+1))
		}
		return out
	}
	return text.Empty{}
}

func decodeRichNode(n map[string]any, depth int) text.RichText {
	if s, ok := n["plain"].(string); ok {
		return text.Plain(s)
	}
	if parts, ok := n["concat"]; ok {
		return decodeRich(parts, depth)
	}
	for _, key := range spanKeys {
		inner, ok := n[key]
		if !ok {
			continue
		}
		style, _ := text.ParseSpanStyle(key)
		span := text.Span{Style: style, Text: decodeRich(inner, depth+1)}
		switch style {
		case text.StyleLink:
			span.Target, _ = n[hrefKey].(string)
		case text.StyleAnchor:
			span.Target, _ = n[nameKey].(string)
		}
		return span
	}
	return text.Empty{}
}

// richDepth returns the nesting depth of a decoded rich-text value.
func richDepth(v any, d int) int {
	if d > MaxDepth {
		return d
	}
	deepest := d
	visit := func(c any) {
		if cd := richDepth(c, d+1); cd > deepest {
			deepest = cd
		}
	}
	switch n := v.(type) {
	case map[string]any:
		for k, c := range n {
			if k != hrefKey && k != nameKey {
				visit(c)
			}
		}
	default:
		if parts, ok := asList(v); ok {
			for _, c := range parts {
				visit(c)
			}
		}
	}
	return deepest
}

// encodeRich is the inverse of decodeRich. Empty text encodes to nil.
func encodeRich(t text.RichText) any {
	switch v := t.(type) {
	case text.Plain:
		if v == "" {
			return nil
		}
		return string(v)
	case text.Concat:
		parts := make([]any, 0, len(v))
		for _, c := range v {
			if e := encodeRich(c); e != nil {
				parts = append(parts, e)
			}
		}
		if len(parts) == 0 {
			return nil
		}
		return map[string]any{"concat": parts}
	case text.Span:
		inner := encodeRich(v.Text)
		if inner == nil {
			inner = ""
		}
		node := map[string]any{v.Style.String(): inner}
		switch v.Style {
		case text.StyleLink:
			node[hrefKey] = v.Target
		case text.StyleAnchor:
			node[nameKey] = v.Target
		}
		return node
	}
	return nil
}
