package file

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/tracetm/pkg/domain"
)

// header line indexes of the CSV format.
const (
	lineName = iota
	lineStates
	lineInput
	lineTape
	lineStart
	lineAccept
	lineReject
	headerLines
)

// ParseCSV reads the line-oriented CSV machine format:
//
//	name
//	state,state,...
//	input symbols
//	tape symbols
//	start
//	accept
//	reject
//	from,read,next,write,move   (one row per transition)
func ParseCSV(r io.Reader) (*domain.Definition, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	lines, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidMachine, err)
	}
	if len(lines) < headerLines {
		return nil, fmt.Errorf("%w: expected at least %d header lines, got %d", domain.ErrInvalidMachine, headerLines, len(lines))
	}

	def := &domain.Definition{
		Name:          first(lines[lineName]),
		States:        fields(lines[lineStates]),
		InputAlphabet: symbols(lines[lineInput]),
		TapeAlphabet:  symbols(lines[lineTape]),
		Start:         first(lines[lineStart]),
		Accept:        first(lines[lineAccept]),
		Reject:        first(lines[lineReject]),
	}

	for i, rec := range lines[headerLines:] {
		rec = fields(rec)
		if len(rec) != 5 {
			return nil, fmt.Errorf("%w: line %d: expected 5 fields (from,read,next,write,move), got %d",
				domain.ErrInvalidMachine, headerLines+i+1, len(rec))
		}
		def.Transitions = append(def.Transitions, domain.Transition{
			From:  rec[0],
			Read:  domain.Symbol(rec[1]),
			Next:  rec[2],
			Write: domain.Symbol(rec[3]),
			Move:  domain.Direction(rec[4]),
		})
	}
	return def, nil
}

func fields(rec []string) []string {
	out := make([]string, 0, len(rec))
	for _, f := range rec {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func symbols(rec []string) []domain.Symbol {
	fs := fields(rec)
	out := make([]domain.Symbol, len(fs))
	for i, f := range fs {
		out[i] = domain.Symbol(f)
	}
	return out
}

func first(rec []string) string {
	fs := fields(rec)
	if len(fs) == 0 {
		return ""
	}
	return fs[0]
}
