package domain

import "fmt"

type Step string

const (
	StepCart     Step = "cart"
	StepUpload   Step = "upload"
	StepShipment Step = "shipment"
	StepPayment  Step = "payment"
	StepSummary  Step = "summary"
)

// Steps is the fixed wizard order.
var Steps = []Step{StepCart, StepUpload, StepShipment, StepPayment, StepSummary}

func ParseStep(s string) (Step, error) {
	for _, st := range Steps {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown checkout step %q", s)
}

func (s Step) Index() int {
	for i, st := range Steps {
		if st == s {
			return i
		}
	}
	return -1
}

// Next returns the following step; the summary is its own successor.
func (s Step) Next() Step {
	i := s.Index()
	if i < 0 || i == len(Steps)-1 {
		return StepSummary
	}
	return Steps[i+1]
}
