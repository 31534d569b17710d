package domain

import (
	"fmt"
	"strings"

	"github.com/mehmetymw/notion-go/pkg/notion"
)

// MatchFilter reports whether page satisfies a database query filter. A nil
// filter matches every page.
func MatchFilter(page *notion.Page, f *notion.Filter) (bool, error) {
	if f == nil {
		return true, nil
	}

	if len(f.And) > 0 {
		for i := range f.And {
			ok, err := MatchFilter(page, &f.And[i])
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}

	if len(f.Or) > 0 {
		for i := range f.Or {
			ok, err := MatchFilter(page, &f.Or[i])
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}

	prop := page.Properties[f.Property]
	switch {
	case f.Title != nil:
		return matchText(notion.PlainTextOf(prop.Title), f.Title), nil
	case f.RichText != nil:
		return matchText(notion.PlainTextOf(prop.RichText), f.RichText), nil
	case f.Number != nil:
		return matchNumber(prop.Number, f.Number), nil
	case f.Checkbox != nil:
		return matchCheckbox(prop.Checkbox, f.Checkbox), nil
	case f.Select != nil:
		return matchSelect(prop.Select, f.Select), nil
	default:
		return false, fmt.Errorf("%w: property %q", ErrUnsupportedFilter, f.Property)
	}
}

func matchText(value string, c *notion.TextCondition) bool {
	switch {
	case c.Equals != "":
		return value == c.Equals
	case c.DoesNotEqual != "":
		return value != c.DoesNotEqual
	case c.Contains != "":
		return strings.Contains(value, c.Contains)
	case c.DoesNotContain != "":
		return !strings.Contains(value, c.DoesNotContain)
	case c.StartsWith != "":
		return strings.HasPrefix(value, c.StartsWith)
	case c.EndsWith != "":
		return strings.HasSuffix(value, c.EndsWith)
	case c.IsEmpty:
		return value == ""
	case c.IsNotEmpty:
		return value != ""
	}
	return true
}

func matchNumber(value *float64, c *notion.NumberCondition) bool {
	if c.IsEmpty {
		return value == nil
	}
	if c.IsNotEmpty {
		return value != nil
	}
	if value == nil {
		return false
	}
	v := *value
	switch {
	case c.Equals != nil:
		return v == *c.Equals
	case c.DoesNotEqual != nil:
		return v != *c.DoesNotEqual
	case c.GreaterThan != nil:
		return v > *c.GreaterThan
	case c.LessThan != nil:
		return v < *c.LessThan
	case c.GreaterThanOrEqualTo != nil:
		return v >= *c.GreaterThanOrEqualTo
	case c.LessThanOrEqualTo != nil:
		return v <= *c.LessThanOrEqualTo
	}
	return true
}

func matchCheckbox(value *bool, c *notion.CheckboxCondition) bool {
	v := value != nil && *value
	switch {
	case c.Equals != nil:
		return v == *c.Equals
	case c.DoesNotEqual != nil:
		return v != *c.DoesNotEqual
	}
	return true
}

func matchSelect(value *notion.SelectOption, c *notion.SelectCondition) bool {
	name := ""
	if value != nil {
		name = value.Name
	}
	switch {
	case c.Equals != "":
		return name == c.Equals
	case c.DoesNotEqual != "":
		return name != c.DoesNotEqual
	case c.IsEmpty:
		return name == ""
	case c.IsNotEmpty:
		return name != ""
	}
	return true
}

// MatchTitle is the search rule: a case-insensitive substring match on the
// title. An empty query matches everything.
func MatchTitle(title, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(query))
}
