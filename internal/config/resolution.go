package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Source names where a resolved value came from.
type Source string

// Sources, highest priority first.
const (
	SourceCLI     Source = "cli"
	SourceEnv     Source = "env"
	SourceDotEnv  Source = "dotenv"
	SourceFile    Source = "file"
	SourceGit     Source = "git"
	SourceDefault Source = "default"
	SourceUnset   Source = ""
)

// Value is one resolved option.
type Value struct {
	String string
	List   []string
	Source Source
}

// Resolved holds the final value of every option in a table.
type Resolved struct {
	table  []Option
	values map[string]Value

	// File is the YAML config file that was read, if any.
	File string
}

// String returns a string option, or "" when unset.
func (r *Resolved) String(key string) string { return r.values[key].String }

// List returns a list option, or nil when unset.
func (r *Resolved) List(key string) []string { return r.values[key].List }

// Source reports where key's value came from.
func (r *Resolved) Source(key string) Source { return r.values[key].Source }

// Options returns the table the values were resolved against.
func (r *Resolved) Options() []Option { return r.table }

// MissingError lists required options that resolved to nothing.
type MissingError struct {
	Options []Option
}

func (e *MissingError) Error() string {
	parts := make([]string, 0, len(e.Options))
	for _, o := range e.Options {
		parts = append(parts, fmt.Sprintf("--%s (%s)", o.Flag(), o.Env()))
	}
	return "missing required configuration: " + strings.Join(parts, ", ")
}

// Keys returns the missing keys in table order.
func (e *MissingError) Keys() []string {
	keys := make([]string, 0, len(e.Options))
	for _, o := range e.Options {
		keys = append(keys, o.Key)
	}
	return keys
}

// Resolver gathers values from every source. The zero value reads the real
// process environment and filesystem.
type Resolver struct {
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
	// DotEnv is the .env file path; "" means ".env".
	DotEnv string
	// Files defaults to DefaultFilePaths().
	Files []string
	// Head supplies the default commit; defaults to HeadCommit(".").
	Head func() (string, error)
}

// Resolve computes every option in table from cmd's parsed flags and the
// lower-priority sources. A *MissingError is returned, together with the
// partial result, when required options are unset.
func (rv Resolver) Resolve(cmd *cobra.Command, table []Option) (*Resolved, error) {
	lookup := rv.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	dotenvPath := rv.DotEnv
	if dotenvPath == "" {
		dotenvPath = ".env"
	}
	files := rv.Files
	if files == nil {
		files = DefaultFilePaths()
	}
	head := rv.Head
	if head == nil {
		head = func() (string, error) { return HeadCommit(".") }
	}

	dotenv, err := godotenv.Read(dotenvPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", dotenvPath, err)
		}
		dotenv = map[string]string{}
	}

	fileVals, filePath, err := loadFile(files)
	if err != nil {
		return nil, err
	}

	res := &Resolved{table: table, values: make(map[string]Value, len(table)), File: filePath}
	var missing []Option

	for _, o := range table {
		v, err := resolveOne(cmd, o, lookup, dotenv, fileVals)
		if err != nil {
			return nil, err
		}
		if v.Source == SourceUnset && o.Key == KeyCommit {
			if sha, err := head(); err == nil {
				v = Value{String: sha, Source: SourceGit}
			}
		}
		if v.Source == SourceUnset && o.Default != "" {
			v = Value{String: o.Default, Source: SourceDefault}
			if o.Kind == KindList {
				v = Value{List: splitList(o.Default), Source: SourceDefault}
			}
		}
		if v.Source == SourceUnset && o.Required {
			missing = append(missing, o)
		}
		res.values[o.Key] = v
	}

	if len(missing) > 0 {
		return res, &MissingError{Options: missing}
	}
	return res, nil
}

func resolveOne(cmd *cobra.Command, o Option, lookup func(string) (string, bool), dotenv map[string]string, file fileValues) (Value, error) {
	flags := cmd.Flags()
	if f := flags.Lookup(o.Flag()); f != nil && f.Changed {
		if o.Kind == KindList {
			items, err := flags.GetStringArray(o.Flag())
			if err != nil {
				return Value{}, fmt.Errorf("flag --%s: %w", o.Flag(), err)
			}
			return Value{List: items, Source: SourceCLI}, nil
		}
		s, err := flags.GetString(o.Flag())
		if err != nil {
			return Value{}, fmt.Errorf("flag --%s: %w", o.Flag(), err)
		}
		return Value{String: s, Source: SourceCLI}, nil
	}

	if s, ok := lookup(o.Env()); ok && s != "" {
		return fromString(o, s, SourceEnv), nil
	}
	if s := dotenv[o.Env()]; s != "" {
		return fromString(o, s, SourceDotEnv), nil
	}
	if o.Kind == KindList {
		if items, ok := file.list(o.Key); ok {
			return Value{List: items, Source: SourceFile}, nil
		}
	} else if s, ok := file.str(o.Key); ok {
		return Value{String: s, Source: SourceFile}, nil
	}
	return Value{}, nil
}

func fromString(o Option, s string, src Source) Value {
	if o.Kind == KindList {
		return Value{List: splitList(s), Source: src}
	}
	return Value{String: s, Source: src}
}

// Describe renders every resolved value with its source, one per line,
// sorted by key.
func (r *Resolved) Describe() []string {
	keys := make([]string, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		v := r.values[k]
		val := v.String
		if v.List != nil {
			val = strings.Join(v.List, " ")
		}
		src := v.Source
		if src == SourceUnset {
			src = "unset"
		}
		lines = append(lines, fmt.Sprintf("%s=%s (%s)", k, val, src))
	}
	return lines
}
