package layout

import (
	"strings"

	"github.com/matzehuels/instantview/pkg/core/text"
)

const (
	authorPlaceholder = "%1$@"
	datePlaceholder   = "%2$@"
)

// byline combines author and date for an authorDate block.
func (e *Engine) byline(author text.RichText, date int32) text.RichText {
	hasAuthor, hasDate := !text.IsEmpty(author), date != 0
	switch {
	case !hasAuthor && !hasDate:
		return text.Empty{}
	case !hasDate:
		return author
	case !hasAuthor:
		return text.Plain(e.formatDate(date))
	}
	return fillTemplate(e.authorDate, author, text.Plain(e.formatDate(date)))
}

// fillTemplate substitutes author and date into tpl, ordering the fragments
// by placeholder offset. Templates without exactly one of each placeholder
// fall back to "author, date".
func fillTemplate(tpl string, author, date text.RichText) text.RichText {
	if strings.Count(tpl, authorPlaceholder) != 1 || strings.Count(tpl, datePlaceholder) != 1 {
		return text.Join(author, text.Plain(", "), date)
	}

	type slot struct {
		offset int
		value  text.RichText
	}
	first := slot{strings.Index(tpl, authorPlaceholder), author}
	second := slot{strings.Index(tpl, datePlaceholder), date}
	if second.offset < first.offset {
		first, second = second, first
	}

	return text.Join(
		text.Plain(tpl[:first.offset]),
		first.value,
		text.Plain(tpl[first.offset+len(authorPlaceholder):second.offset]),
		second.value,
		text.Plain(tpl[second.offset+len(datePlaceholder):]),
	)
}
