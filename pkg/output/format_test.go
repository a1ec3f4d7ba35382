package output

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"github.com/iwvelando/loan-amortization/pkg/datetime"
	"gopkg.in/yaml.v3"
)

func compare(t *testing.T, custom *float64) amortization.Comparison {
	t.Helper()
	cmp, err := amortization.Compare(context.Background(), amortization.Input{
		PurchasePrice: 120000,
		InterestRate:  6,
		DownPayment:   20000,
		TermYears:     30,
		StartDate:     datetime.MustParseDate("2024-01-01"),
		CustomPayment: custom,
	})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	return cmp
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, compare(t, nil), "$"); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	output := buf.String()

	if !strings.Contains(output, "--- Results for original schedule ---") {
		t.Errorf("PrettyFormat missing original header")
	}
	if !strings.Contains(output, "#   | Date       | Payment | Principal | Interest | Balance") {
		t.Errorf("PrettyFormat missing table header")
	}
	if !strings.Contains(output, "Monthly payment: $599.55") {
		t.Errorf("PrettyFormat missing monthly payment")
	}
	if !strings.Contains(output, "$99,900.45") {
		t.Errorf("PrettyFormat missing grouped balance value")
	}
	if !strings.Contains(output, "Payoff date:     2053-06-27") {
		t.Errorf("PrettyFormat missing payoff date")
	}
	if strings.Contains(output, "custom schedule") || strings.Contains(output, "Savings") {
		t.Errorf("PrettyFormat printed a custom section without a custom payment")
	}
}

func TestPrettyFormatWithCustomPayment(t *testing.T) {
	custom := 900.0
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, compare(t, &custom), "€"); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	output := buf.String()

	if !strings.Contains(output, "--- Results for custom schedule ---") {
		t.Errorf("PrettyFormat missing custom header")
	}
	if !strings.Contains(output, "Monthly payment: €900.00") {
		t.Errorf("PrettyFormat missing custom monthly payment")
	}
	if !strings.Contains(output, "Total payments saved: €69,505.40") {
		t.Errorf("PrettyFormat missing total saved")
	}
	if !strings.Contains(output, "Months saved:         197") {
		t.Errorf("PrettyFormat missing months saved, got:\n%s", output[len(output)-200:])
	}
	if strings.Contains(output, "$") {
		t.Errorf("PrettyFormat used the default symbol instead of the given one")
	}
}

func TestPrettyFormatDefaultSymbol(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, compare(t, nil), ""); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Monthly payment: $599.55") {
		t.Errorf("PrettyFormat did not fall back to the default symbol")
	}
}

func TestCsvFormat(t *testing.T) {
	custom := 900.0
	cmp := compare(t, &custom)

	out, err := CsvString(cmp)
	if err != nil {
		t.Fatalf("CsvString() error = %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV output: %v", err)
	}

	expectedRows := 1 + cmp.Original.Months() + cmp.Custom.Months()
	if len(records) != expectedRows {
		t.Fatalf("CSV has %d rows, expected %d", len(records), expectedRows)
	}
	if strings.Join(records[0], ",") != "result,payment_number,date,payment,principal,interest,balance" {
		t.Errorf("unexpected CSV header: %v", records[0])
	}

	first := records[1]
	expected := []string{"original", "1", "2024-01-01", "599.55", "99.55", "500.00", "99900.45"}
	for i := range expected {
		if first[i] != expected[i] {
			t.Errorf("first row column %s = %s, expected %s", CsvHeader[i], first[i], expected[i])
		}
	}

	customFirst := records[1+cmp.Original.Months()]
	if customFirst[0] != "custom" || customFirst[3] != "900.00" {
		t.Errorf("first custom row = %v, expected custom payment of 900.00", customFirst)
	}
}

func TestYAMLString(t *testing.T) {
	out, err := YAMLString(compare(t, nil))
	if err != nil {
		t.Fatalf("YAMLString() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("YAML output does not parse: %v", err)
	}
	original, ok := decoded["original"].(map[string]interface{})
	if !ok {
		t.Fatalf("YAML output missing original result: %v", decoded)
	}
	summary, ok := original["summary"].(map[string]interface{})
	if !ok {
		t.Fatalf("YAML output missing summary: %v", original)
	}
	if summary["payoffDate"] != "2053-06-27" {
		t.Errorf("payoffDate = %v, expected 2053-06-27", summary["payoffDate"])
	}
	if _, present := decoded["custom"]; present {
		t.Errorf("YAML output contains custom result without a custom payment")
	}
}
