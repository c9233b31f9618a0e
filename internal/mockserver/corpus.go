// Package mockserver is a stand-in srcmap instance backed by a fixture
// corpus. It serves the same API surface the evaluator consumes, which
// makes local runs and CI possible without an indexed repository.
package mockserver

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/srcmap/evalkit/internal/apperr"
	"github.com/srcmap/evalkit/internal/srcmap"
)

// FlowFixture is one flow of the fixture corpus together with its cards.
// Card counts and file counts are derived, not stored.
type FlowFixture struct {
	Name  string        `json:"flow"`
	Repos []string      `json:"repos"`
	Cards []srcmap.Card `json:"cards"`
}

type Corpus struct {
	Flows []FlowFixture `json:"flows"`
}

// LoadCorpus reads a fixture corpus from a JSON file.
func LoadCorpus(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	var c Corpus
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, apperr.NewDataWrap("invalid corpus file", err)
	}
	if len(c.Flows) == 0 {
		return nil, apperr.NewData("corpus has no flows")
	}
	return &c, nil
}

// FlowSummaries derives the flow listing served by the flows endpoint.
func (c *Corpus) FlowSummaries() []srcmap.Flow {
	flows := make([]srcmap.Flow, 0, len(c.Flows))
	for _, f := range c.Flows {
		files := make(map[string]struct{})
		for _, card := range f.Cards {
			for _, sf := range card.SourceFiles {
				files[sf] = struct{}{}
			}
		}
		flows = append(flows, srcmap.Flow{
			Name:      f.Name,
			CardCount: len(f.Cards),
			FileCount: len(files),
			Repos:     srcmap.RepoList(f.Repos),
		})
	}
	sort.Slice(flows, func(i, j int) bool { return flows[i].Name < flows[j].Name })
	return flows
}

func (c *Corpus) AllCards() []srcmap.Card {
	var cards []srcmap.Card
	for _, f := range c.Flows {
		cards = append(cards, f.Cards...)
	}
	return cards
}

func (c *Corpus) CardsForFlow(name string) []srcmap.Card {
	for _, f := range c.Flows {
		if strings.EqualFold(f.Name, name) {
			return f.Cards
		}
	}
	return nil
}

// DefaultCorpus is a small built-in corpus so the mock can run without
// a fixture file.
func DefaultCorpus() *Corpus {
	return &Corpus{
		Flows: []FlowFixture{
			{
				Name:  "UserSignup",
				Repos: []string{"webshop"},
				Cards: []srcmap.Card{
					{
						Title:       "Signup request validation",
						Content:     "Incoming signup requests are validated for email format and password strength before the user record is created.",
						CardType:    "validation",
						Flow:        "UserSignup",
						Score:       0.92,
						SourceFiles: []string{"internal/auth/signup.go", "internal/auth/validate.go"},
					},
					{
						Title:       "Account creation and welcome email",
						Content:     "A verified signup creates the account row and enqueues a welcome email job.",
						CardType:    "workflow",
						Flow:        "UserSignup",
						Score:       0.88,
						SourceFiles: []string{"internal/auth/signup.go", "internal/mail/welcome.go"},
					},
				},
			},
			{
				Name:  "OrderCheckout",
				Repos: []string{"webshop"},
				Cards: []srcmap.Card{
					{
						Title:       "Checkout totals and tax",
						Content:     "Checkout sums the cart, applies tax rules per region, and reserves stock.",
						CardType:    "workflow",
						Flow:        "OrderCheckout",
						Score:       0.9,
						SourceFiles: []string{"internal/checkout/totals.go", "internal/checkout/stock.go"},
					},
				},
			},
			{
				Name:  "OrderCheckout" + srcmap.CrossServiceSeparator + "PaymentGateway",
				Repos: []string{"webshop", "payments"},
				Cards: []srcmap.Card{
					{
						Title:       "Payment authorization handoff",
						Content:     "Checkout hands the order total to the payment gateway and waits for an authorization callback.",
						CardType:    "integration",
						Flow:        "OrderCheckout" + srcmap.CrossServiceSeparator + "PaymentGateway",
						Score:       0.86,
						SourceFiles: []string{"internal/checkout/payment.go", "gateway/authorize.go"},
					},
				},
			},
		},
	}
}
