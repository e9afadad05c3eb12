package main

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/noelzubin/cmdref/session"
	"github.com/noelzubin/cmdref/utils"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *utils.Config
	Logger  *log.Logger
	Session *session.Session
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Config file" type:"path" env:"CMDREF_CONFIG"`
	DB      string `name:"db" help:"Corpus location, overrides db_path" type:"path"`
	Backend string `help:"Storage backend: json or sqlite"`
	Engine  string `help:"Search engine: scan or bleve"`

	Tui        TuiCmd        `cmd:"" help:"Browse the reference interactively (default)"`
	Search     SearchCmd     `cmd:"" help:"Search topics"`
	Show       ShowCmd       `cmd:"" help:"Show a topic"`
	Add        AddCmd        `cmd:"" help:"Add or replace a topic"`
	Edit       EditCmd       `cmd:"" help:"Replace one field of a topic"`
	Template   TemplateCmd   `cmd:"" help:"Append a notes template to a topic"`
	Item       ItemCmd       `cmd:"" help:"Append a bullet or numbered list item to a topic's notes"`
	Style      StyleCmd      `cmd:"" help:"Toggle a style over part of a topic's notes"`
	Delete     DeleteCmd     `cmd:"" help:"Delete a topic or a whole category"`
	Rename     RenameCmd     `cmd:"" help:"Rename a category"`
	Categories CategoriesCmd `cmd:"" help:"List categories"`
}

// TuiCmd is the "tui" subcommand.
type TuiCmd struct{}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Term     string `arg:"" optional:"" help:"Search term, lists everything when empty"`
	Category string `short:"c" help:"Only search this category"`
	Exact    bool   `short:"x" help:"Match whole words only"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Category  string `arg:"" help:"Category name"`
	Title     string `arg:"" help:"Topic title"`
	Highlight string `short:"H" help:"Highlight occurrences of this term"`
	Plain     bool   `help:"Print without colours"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Category     string `arg:"" help:"Category name, created if missing"`
	Title        string `arg:"" help:"Topic title"`
	Code         string `help:"Configuration commands"`
	Verification string `help:"Verification commands"`
	Example      string `help:"Example text"`
	Notes        string `help:"Notes"`
}

// EditCmd is the "edit" subcommand.
type EditCmd struct {
	Category string  `arg:"" help:"Category name"`
	Title    string  `arg:"" help:"Topic title"`
	Field    string  `arg:"" enum:"code,verification,example,notes" help:"Field to replace: code, verification, example or notes"`
	Value    *string `arg:"" optional:"" help:"New value, read from stdin when omitted"`
}

// TemplateCmd is the "template" subcommand.
type TemplateCmd struct {
	Category string `arg:"" help:"Category name"`
	Title    string `arg:"" help:"Topic title"`
	Number   int    `arg:"" help:"Template number, starting at 1"`
}

// ItemCmd is the "item" subcommand.
type ItemCmd struct {
	Category string `arg:"" help:"Category name"`
	Title    string `arg:"" help:"Topic title"`
	Text     string `arg:"" optional:"" help:"Item text"`
	Numbered bool   `short:"n" help:"Continue the numbered list instead of adding a bullet"`
}

// StyleCmd is the "style" subcommand.
type StyleCmd struct {
	Category string `arg:"" help:"Category name"`
	Title    string `arg:"" help:"Topic title"`
	Tag      string `arg:"" help:"bold, italic, underline, code, color:<name>, size:<name> or align:<name>"`
	Start    int    `arg:"" help:"First character of the selection"`
	End      int    `arg:"" help:"Character after the selection"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Category string `arg:"" help:"Category name"`
	Title    string `arg:"" optional:"" help:"Topic title, the whole category when omitted"`
	Force    bool   `help:"Confirm deleting a whole category"`
}

// RenameCmd is the "rename" subcommand.
type RenameCmd struct {
	From string `arg:"" help:"Current category name"`
	To   string `arg:"" help:"New category name"`
}

// CategoriesCmd is the "categories" subcommand.
type CategoriesCmd struct{}
