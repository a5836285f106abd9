package qrcode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"prerender/internal/fileutil"
	"prerender/internal/frontmatter"
	"prerender/internal/logging"
)

// ErrDocumentUnreadable indicates the source document could not be read.
var ErrDocumentUnreadable = errors.New("document unreadable")

// Status describes the outcome of a generation attempt.
type Status int

const (
	Generated Status = iota
	Skipped
	EncodeFailure
	WriteFailure
)

func (s Status) String() string {
	switch s {
	case Generated:
		return "generated"
	case Skipped:
		return "skipped"
	case EncodeFailure:
		return "encode failure"
	case WriteFailure:
		return "write failure"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result reports what Generate did.
type Result struct {
	Status Status
	URL    string
	Path   string
	Bytes  int
}

// Generator turns a document's footer-url into an SVG file.
type Generator struct {
	logger *slog.Logger
}

// NewGenerator returns a generator that logs through logger.
func NewGenerator(logger *slog.Logger) *Generator {
	return &Generator{logger: logging.NewComponentLogger(logger, "qrcode")}
}

// Generate reads documentPath and writes a QR code for its footer-url to
// destinationPath. A document without the key yields Skipped and no file.
// Encode failures, unreadable documents and write errors are returned.
func (g *Generator) Generate(ctx context.Context, documentPath, destinationPath string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	logger := logging.WithContext(ctx, g.logger)

	text, err := frontmatter.ReadFile(documentPath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrDocumentUnreadable, err)
	}

	url, ok := frontmatter.FooterURL(text)
	if !ok {
		logger.Info("no footer-url set, skipping",
			logging.String("document", documentPath),
			logging.String(logging.FieldEventType, "qr_skipped"),
		)
		return Result{Status: Skipped}, nil
	}

	data, err := Render(url)
	if err != nil {
		return Result{Status: EncodeFailure, URL: url}, err
	}

	if err := fileutil.WriteFileAtomicMkdir(destinationPath, data, 0o644); err != nil {
		return Result{Status: WriteFailure, URL: url}, fmt.Errorf("write qr code %s: %w", destinationPath, err)
	}

	logger.Info("generated",
		logging.String(logging.FieldDestination, destinationPath),
		logging.String(logging.FieldURL, url),
		logging.String(logging.FieldEventType, "qr_generated"),
	)
	return Result{Status: Generated, URL: url, Path: destinationPath, Bytes: len(data)}, nil
}
