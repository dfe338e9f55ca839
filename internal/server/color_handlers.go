package server

import (
	"hxls/internal/colors"
	"hxls/internal/document"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) textDocumentColor(
	glspContext *glsp.Context,
	params *protocol.DocumentColorParams,
) ([]protocol.ColorInformation, error) {
	if !s.features.colors {
		return nil, nil
	}

	uri := params.TextDocument.URI
	snap, err := s.docs.Snapshot(uri)
	if err != nil {
		return nil, err
	}

	hash := colors.HashText(snap.Text)
	if cached, ok := s.colors.Get(uri, hash); ok {
		return cached, nil
	}

	info := colorInformation(snap, colors.Scan(snap.Text))
	s.colors.Put(uri, hash, info)
	return info, nil
}

// colorInformation converts scan matches into protocol color info,
// mapping byte offsets onto UTF-16 positions.
func colorInformation(snap *document.Snapshot, matches []colors.Match) []protocol.ColorInformation {
	info := make([]protocol.ColorInformation, 0, len(matches))
	for _, m := range matches {
		start, err := snap.ToPosition(m.Start)
		if err != nil {
			continue
		}
		end, err := snap.ToPosition(m.End)
		if err != nil {
			continue
		}
		info = append(info, protocol.ColorInformation{
			Range: protocol.Range{Start: start, End: end},
			Color: protocol.Color{
				Red:   protocol.Decimal(m.Literal.Color.R),
				Green: protocol.Decimal(m.Literal.Color.G),
				Blue:  protocol.Decimal(m.Literal.Color.B),
				Alpha: protocol.Decimal(m.Literal.Color.A),
			},
		})
	}
	return info
}

func (s *Server) textDocumentColorPresentation(
	glspContext *glsp.Context,
	params *protocol.ColorPresentationParams,
) ([]protocol.ColorPresentation, error) {
	if !s.features.colors {
		return nil, nil
	}

	snap, err := s.docs.Snapshot(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	original, err := snap.RangeText(params.Range)
	if err != nil {
		return nil, err
	}

	edited := colors.Value{
		R: float64(params.Color.Red),
		G: float64(params.Color.Green),
		B: float64(params.Color.Blue),
		A: float64(params.Color.Alpha),
	}

	var label string
	if lit, ok := colors.ParseLiteral(original); ok {
		label = colors.Present(lit, edited)
	} else {
		// The range no longer holds a color literal; fall back to hex,
		// which every notation can round-trip through.
		label = colors.Present(colors.Literal{Family: colors.Hex}, edited)
	}

	return []protocol.ColorPresentation{{
		Label: label,
		TextEdit: &protocol.TextEdit{
			Range:   params.Range,
			NewText: label,
		},
	}}, nil
}
