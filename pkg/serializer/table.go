package serializer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cheapamd/camd/pkg/offering"
)

var pricePrinter = message.NewPrinter(language.AmericanEnglish)

// classOrder fixes the group rendering order: GPUs before CPUs.
var classOrder = []offering.Class{offering.ClassGPU, offering.ClassCPU}

func classHeading(c offering.Class) string {
	switch c {
	case offering.ClassGPU:
		return "GPU OFFERINGS"
	case offering.ClassCPU:
		return "CPU OFFERINGS"
	default:
		return strings.ToUpper(string(c)) + " OFFERINGS"
	}
}

func (w *Writer) serializeTable(data any) error {
	if offerings, ok := asOfferings(data); ok {
		return w.offeringTable(offerings)
	}
	return w.genericTable(data)
}

func (w *Writer) serializeCSV(data any) error {
	offerings, ok := asOfferings(data)
	if !ok {
		return fmt.Errorf("csv format supports offering lists only, got %T", data)
	}

	cw := csv.NewWriter(w.out)
	if err := cw.Write([]string{
		"class", "model", "provider", "instance_type", "units",
		"price_per_hour", "price_per_unit", "vcpus", "memory_gb",
		"region", "spot", "stock",
	}); err != nil {
		return err
	}
	for _, o := range offerings {
		rec := []string{
			string(o.Class),
			o.Model,
			o.Provider,
			o.InstanceType,
			strconv.Itoa(o.UnitCount),
			strconv.FormatFloat(o.PricePerHour, 'f', 2, 64),
			strconv.FormatFloat(o.PricePerUnit(), 'f', 2, 64),
			strconv.Itoa(o.VCPUs),
			strconv.FormatFloat(o.MemoryGB, 'f', -1, 64),
			o.Region,
			strconv.FormatBool(o.Spot),
			o.StockStatus,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func asOfferings(data any) ([]offering.Offering, bool) {
	switch v := data.(type) {
	case []offering.Offering:
		return v, true
	case *[]offering.Offering:
		if v == nil {
			return nil, true
		}
		return *v, true
	}
	return nil, false
}

// offeringTable renders the grouped price comparison. Each class group
// is sorted by price per unit and the cheapest row is marked.
func (w *Writer) offeringTable(offerings []offering.Offering) error {
	if len(offerings) == 0 {
		_, err := fmt.Fprintln(w.out, "<empty>")
		return err
	}

	groups := offering.GroupByClass(offerings)

	first := true
	for _, class := range classOrder {
		group := groups[class]
		if len(group) == 0 {
			continue
		}
		if !first {
			fmt.Fprintln(w.out)
		}
		first = false
		if err := w.classTable(class, group); err != nil {
			return err
		}
	}

	// Offerings with an unrecognized class still get rendered rather
	// than dropped.
	var extra []offering.Class
	for class := range groups {
		if class != offering.ClassGPU && class != offering.ClassCPU {
			extra = append(extra, class)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, class := range extra {
		fmt.Fprintln(w.out)
		if err := w.classTable(class, groups[class]); err != nil {
			return err
		}
	}

	return nil
}

func (w *Writer) classTable(class offering.Class, group []offering.Offering) error {
	offering.Sort(group)

	fmt.Fprintln(w.out, classHeading(class))

	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  MODEL\tPROVIDER\tINSTANCE\tUNITS\t$/UNIT/HR\t$/HR\tVCPUS\tMEM(GB)\tREGION\tTYPE\tSTOCK")
	for i, o := range group {
		marker := " "
		if i == 0 {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s %s\t%s\t%s\t%d\t%s\t%s\t%d\t%.0f\t%s\t%s\t%s\n",
			marker,
			o.Model,
			o.Provider,
			o.InstanceType,
			o.UnitCount,
			pricePrinter.Sprintf("$%.2f", o.PricePerUnit()),
			pricePrinter.Sprintf("$%.2f", o.PricePerHour),
			o.VCPUs,
			o.MemoryGB,
			orDash(o.Region),
			pricingType(o),
			stockLabel(o),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, o := range group {
		if len(o.Features) > 0 {
			fmt.Fprintf(w.out, "    %s: %s\n", o.InstanceType, strings.Join(o.Features, ", "))
		}
	}
	_, err := fmt.Fprintln(w.out, "  * cheapest per unit")
	return err
}

func pricingType(o offering.Offering) string {
	if o.Spot {
		return "spot"
	}
	return "on-demand"
}

func stockLabel(o offering.Offering) string {
	if o.StockStatus != "" {
		return o.StockStatus
	}
	if o.Available {
		return "available"
	}
	return "unavailable"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// genericTable renders any value as flattened FIELD/VALUE rows, going
// through a JSON round trip so tags and nesting behave the same as the
// json output.
func (w *Writer) genericTable(data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to flatten data for table output: %w", err)
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("failed to flatten data for table output: %w", err)
	}

	rows := map[string]string{}
	flatten("", decoded, rows)

	if len(rows) == 0 {
		_, err := fmt.Fprintln(w.out, "<empty>")
		return err
	}

	keys := make([]string, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", k, rows[k])
	}
	return tw.Flush()
}

func flatten(prefix string, v any, out map[string]string) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			flatten(joinKey(prefix, k), child, out)
		}
	case []any:
		for i, child := range t {
			flatten(fmt.Sprintf("%s[%d]", prefix, i), child, out)
		}
	case nil:
		out[prefix] = "<nil>"
	case float64:
		out[prefix] = strconv.FormatFloat(t, 'f', -1, 64)
	default:
		out[prefix] = fmt.Sprintf("%v", t)
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
