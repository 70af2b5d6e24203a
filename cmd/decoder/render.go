package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"requestScope/internal/model"
)

var printer = message.NewPrinter(language.English)

// displayValue renders one field for the terminal. Amounts are grouped the way
// the explorer shows them; everything else goes through model.PresentValue.
func displayValue(key string, value interface{}) string {
	if v, ok := value.(float64); ok {
		return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(19)))
	}
	primary, secondary := model.PresentValue(key, value)
	return primary + secondary
}

func renderFields(w io.Writer, msg model.DecodedMessage) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range msg.Fields() {
		fmt.Fprintf(tw, "%s\t%s\n", model.Label(f.Key), displayValue(f.Key, f.Value))
	}
	return tw.Flush()
}

// renderComparison prints two messages side by side, one row per key in the
// order the keys first appear. Rows whose values differ are marked with '*'.
func renderComparison(w io.Writer, left, right model.DecodedMessage) error {
	leftValues := model.FieldMap(left)
	rightValues := model.FieldMap(right)

	var keys []string
	seen := make(map[string]bool)
	for _, msg := range []model.DecodedMessage{left, right} {
		for _, f := range msg.Fields() {
			if !seen[f.Key] {
				seen[f.Key] = true
				keys = append(keys, f.Key)
			}
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, key := range keys {
		l := cell(key, leftValues)
		r := cell(key, rightValues)
		mark := " "
		if l != r {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s %s\t%s\t%s\n", mark, model.Label(key), l, r)
	}
	return tw.Flush()
}

func cell(key string, values map[string]interface{}) string {
	value, ok := values[key]
	if !ok {
		return "-"
	}
	return displayValue(key, value)
}
