package main

import (
	"fmt"

	"github.com/verte-zerg/kanjiq/internal/config"
	"github.com/verte-zerg/kanjiq/internal/kanji"
	"github.com/verte-zerg/kanjiq/internal/selection"
)

const (
	sourceArg    = "argument"
	sourceState  = "saved"
	sourceData   = "data file"
	sourceConfig = "config"
	sourceNone   = "default"
)

type selectionInputs struct {
	Arg        string
	ArgGiven   bool
	State      config.State
	StateSaved bool
	Document   kanji.Document
	Default    *string
}

type resolvedSelection struct {
	Spec selection.Spec
	From string
}

// resolveSelection picks the active selection: a category argument first,
// then the saved state, then the data file's selected_category, then the
// config default.
func resolveSelection(in selectionInputs) (resolvedSelection, error) {
	if in.ArgGiven {
		spec, err := selection.Parse(in.Arg)
		if err != nil {
			return resolvedSelection{}, err
		}
		return resolvedSelection{Spec: spec, From: sourceArg}, nil
	}
	if in.StateSaved {
		return resolvedSelection{Spec: in.State.Spec(), From: sourceState}, nil
	}
	if !in.Document.SelectedCategory.IsNoFilter() {
		return resolvedSelection{Spec: in.Document.SelectedCategory, From: sourceData}, nil
	}
	if in.Default != nil {
		spec, err := selection.Parse(*in.Default)
		if err != nil {
			return resolvedSelection{}, fmt.Errorf("invalid category in config: %w", err)
		}
		return resolvedSelection{Spec: spec, From: sourceConfig}, nil
	}
	return resolvedSelection{Spec: selection.NoFilter(), From: sourceNone}, nil
}
