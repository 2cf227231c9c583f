// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"log"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
	"parsecheck/internal/lsp"
)

const lsName = "parse-checker" // Name identifier for the language server

var handler protocol.Handler // Protocol handler instance (wired up below)

func main() {
	typecheck := flag.Bool("typecheck", false, "report declaration and arity errors")
	verbosity := flag.Int("v", 1, "log verbosity")
	flag.Parse()

	// Logs go to stderr; stdout carries the protocol.
	commonlog.Configure(*verbosity, nil)

	h := lsp.NewHandler(nil)
	h.TypeCheck = *typecheck

	handler = protocol.Handler{
		Initialize:                     h.Initialize,
		Initialized:                    h.Initialized,
		Shutdown:                       h.Shutdown,
		SetTrace:                       h.SetTrace,
		TextDocumentDidOpen:            h.TextDocumentDidOpen,
		TextDocumentDidClose:           h.TextDocumentDidClose,
		TextDocumentDidChange:          h.TextDocumentDidChange,
		TextDocumentFormatting:         h.TextDocumentFormatting,
		TextDocumentSemanticTokensFull: h.TextDocumentSemanticTokensFull,
	}

	// debug disables glsp's own protocol logs
	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting parse-checker LSP server...")

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting parse-checker LSP server:", err)
		os.Exit(1)
	}
}
