package eval

import (
	"errors"
	"math"
	"testing"

	"github.com/cognicore/lexicat/pkg/lexicat/internalerr"
	"github.com/cognicore/lexicat/pkg/lexicat/score"
)

func TestEvaluateHitAndMiss(t *testing.T) {
	predicted := []score.Category{{Label: "X", Score: 4.0}, {Label: "Y", Score: 2.0}}

	if got := Evaluate("X", predicted); got != (Outcome{Gold: "X", Hit: true}) {
		t.Errorf("expected hit for X, got %+v", got)
	}
	if got := Evaluate("Z", predicted[:1]); got != (Outcome{Gold: "Z", Hit: false}) {
		t.Errorf("expected miss for Z, got %+v", got)
	}
	if got := Evaluate("Y", predicted[:1]); got.Hit {
		t.Error("Y is outside the top-1 and must not count")
	}
	if got := Evaluate("X", nil); got.Hit {
		t.Error("empty prediction cannot hit")
	}
}

func TestSummarizeGroupsByPrefix(t *testing.T) {
	outcomes := []Outcome{
		{Gold: "P-a", Hit: true},
		{Gold: "P-b", Hit: false},
		{Gold: "Q-a", Hit: true},
	}

	sum, err := Summarize(outcomes)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if len(sum.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %v", sum.Groups)
	}
	// Ordered by key descending
	q, p := sum.Groups[0], sum.Groups[1]
	if q.Key != "Q" || q.Accuracy != 1.0 || q.Hits != 1 || q.Total != 1 {
		t.Errorf("unexpected Q group %+v", q)
	}
	if p.Key != "P" || p.Accuracy != 0.5 || p.Hits != 1 || p.Total != 2 {
		t.Errorf("unexpected P group %+v", p)
	}

	if sum.Overall.Hits != 2 || sum.Overall.Total != 3 {
		t.Errorf("unexpected overall %+v", sum.Overall)
	}
	if math.Abs(sum.Overall.Accuracy-2.0/3.0) > 1e-9 {
		t.Errorf("expected overall 0.667, got %f", sum.Overall.Accuracy)
	}
}

func TestSummarizeEmptyIsDivisionError(t *testing.T) {
	_, err := Summarize(nil)
	if !errors.Is(err, internalerr.ErrEmptyGroup) {
		t.Fatalf("expected ErrEmptyGroup, got %v", err)
	}
}

func TestCoarseKey(t *testing.T) {
	cases := map[string]string{
		"暮らし・住まい-バス・トイレ・洗面用品": "暮らし・住まい",
		"家電-AV機器-テレビ":             "家電",
		"ファッション":                  "ファッション",
		"-lead":                   "",
	}
	for label, want := range cases {
		if got := CoarseKey(label); got != want {
			t.Errorf("CoarseKey(%q) = %q, want %q", label, got, want)
		}
	}
}

func TestSummarizeByDepth(t *testing.T) {
	outcomes := []Outcome{
		{Gold: "家電-AV機器-テレビ", Hit: true},
		{Gold: "家電-AV機器-オーディオ", Hit: false},
		{Gold: "家電-生活家電", Hit: true},
	}

	sum, err := SummarizeBy(outcomes, KeyAtDepth(2))
	if err != nil {
		t.Fatal(err)
	}
	if len(sum.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %v", sum.Groups)
	}
	if sum.Groups[0].Key != "家電-生活家電" || sum.Groups[1].Key != "家電-AV機器" {
		t.Errorf("unexpected keys %v", sum.Groups)
	}
	if sum.Groups[1].Total != 2 || sum.Groups[1].Hits != 1 {
		t.Errorf("unexpected AV group %+v", sum.Groups[1])
	}

	coarse, _ := SummarizeBy(outcomes, KeyAtDepth(1))
	if len(coarse.Groups) != 1 || coarse.Groups[0].Key != "家電" {
		t.Errorf("depth 1 should collapse to 家電, got %v", coarse.Groups)
	}
}

func TestGroupAccuracyString(t *testing.T) {
	g := GroupAccuracy{Key: "P", Accuracy: 0.5, Hits: 1, Total: 2}
	if got := g.String(); got != "P: 0.500 (1/2)" {
		t.Errorf("got %q", got)
	}
}
