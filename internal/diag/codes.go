package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical: characters and literals
	LexInfo                 Code = 1000
	LexUnsupportedCharacter Code = 1001
	LexUnclosedString       Code = 1002
	LexInvalidEscape        Code = 1003
	LexIntegerOverflow      Code = 1004

	// Grouping
	SynInfo                Code = 2000
	SynUnexpectedDelimiter Code = 2001
	SynExpectedDelimiter   Code = 2002
	SynReservedDelimiter   Code = 2003

	// Evaluation
	EvalInfo           Code = 4000
	EvalUnknownCommand Code = 4001
	EvalBuiltinFailed  Code = 4002
	EvalCanceled       Code = 4003

	// Files and cache
	IOLoadFileError Code = 5001
	IOCacheError    Code = 5002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001

	// Project manifest
	ProjInfo            Code = 7000
	ProjInvalidManifest Code = 7001
	ProjMissingMain     Code = 7002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:             "Unknown error",
		LexInfo:                 "Lexical information",
		LexUnsupportedCharacter: "Unsupported character",
		LexUnclosedString:       "Unclosed string literal",
		LexInvalidEscape:        "Invalid escape sequence",
		LexIntegerOverflow:      "Integer literal does not fit in 64 bits",
		SynInfo:                 "Syntax information",
		SynUnexpectedDelimiter:  "Unexpected closing delimiter",
		SynExpectedDelimiter:    "Expected closing delimiter",
		SynReservedDelimiter:    "Reserved delimiter",
		EvalInfo:                "Evaluation information",
		EvalUnknownCommand:      "Unknown command",
		EvalBuiltinFailed:       "Command failed",
		EvalCanceled:            "Evaluation canceled",
		IOLoadFileError:         "I/O load file error",
		IOCacheError:            "Parse cache error",
		ObsInfo:                 "Observability information",
		ObsTimings:              "Pipeline timings",
		ProjInfo:                "Project information",
		ProjInvalidManifest:     "Invalid project manifest",
		ProjMissingMain:         "Missing entry file",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("EVAL%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
