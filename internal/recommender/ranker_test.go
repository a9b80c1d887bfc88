package recommender

import (
	"reflect"
	"testing"
)

func TestTopN(t *testing.T) {
	scored := []ScoredCandidate{
		{ItemID: "e1", Score: 1},
		{ItemID: "e2", Score: 5},
		{ItemID: "e3", Score: 3},
	}

	got := TopN(scored, 2)
	want := []string{"e2", "e3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("esperaba %v, obtuve %v", want, got)
	}
}

func TestTopNStableTies(t *testing.T) {
	// empates: se preserva el orden de iteración de los candidatos
	scored := []ScoredCandidate{
		{ItemID: "e1", Score: 2},
		{ItemID: "e2", Score: 2},
		{ItemID: "e3", Score: 2},
	}

	got := TopN(scored, 3)
	want := []string{"e1", "e2", "e3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("desempate inestable: esperaba %v, obtuve %v", want, got)
	}
}

func TestTopNShorterThanN(t *testing.T) {
	scored := []ScoredCandidate{{ItemID: "e1", Score: 1}}

	got := TopN(scored, 10)
	if len(got) != 1 {
		t.Errorf("con 1 candidato el resultado debe tener largo 1, obtuve %d", len(got))
	}
}
