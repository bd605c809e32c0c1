package declare

import (
	"fmt"

	"github.com/specialistvlad/declparse/internal/registry"
)

// collectRefs lists every hook name used by pb and its descendants.
func collectRefs(pb *parserBlock, where string) []registry.Ref {
	where = joinWhere(where, fmt.Sprintf("parser %q", pb.Name))

	var refs []registry.Ref
	if pb.Validate != nil {
		refs = append(refs, registry.Ref{Kind: registry.ValidatorHook, Name: *pb.Validate, Where: where})
	}
	if pb.Produce != nil {
		refs = append(refs, registry.Ref{Kind: registry.ProducerHook, Name: *pb.Produce, Where: where})
	}
	for _, ab := range pb.Arguments {
		argWhere := joinWhere(where, fmt.Sprintf("argument %q", ab.Name))
		if ab.Converter != nil {
			refs = append(refs, registry.Ref{Kind: registry.ConverterHook, Name: *ab.Converter, Where: argWhere})
		}
		if ab.Callback != nil {
			refs = append(refs, registry.Ref{Kind: registry.ActionHook, Name: *ab.Callback, Where: argWhere})
		}
	}
	for _, child := range pb.Parsers {
		refs = append(refs, collectRefs(child, where)...)
	}
	return refs
}

func joinWhere(outer, inner string) string {
	if outer == "" {
		return inner
	}
	return outer + " " + inner
}
