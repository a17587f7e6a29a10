package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"code.sajari.com/docconv"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/certmeta/internal/cache"
	"github.com/hyperifyio/certmeta/internal/domain"
)

// ErrUnsupported is returned for files whose extension no extractor handles.
var ErrUnsupported = errors.New("unsupported document type")

// ExtractionError reports that a document could not be parsed at all.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extractor turns the raw bytes of one document into text.
type Extractor interface {
	Extract(input []byte) (Document, error)
}

// PDFExtractor converts PDFs with docconv, which shells out to poppler's
// pdftotext and pdfinfo.
type PDFExtractor struct{}

func (PDFExtractor) Extract(input []byte) (Document, error) {
	res, err := docconv.Convert(bytes.NewReader(input), "application/pdf", false)
	if err != nil {
		return Document{}, err
	}
	pages, _ := strconv.Atoi(strings.TrimSpace(res.Meta["Pages"]))
	if pages == 0 {
		pages = strings.Count(strings.TrimRight(res.Body, "\f"), "\f") + 1
	}
	return Document{Title: res.Meta["Title"], Text: tidyLines(res.Body), Pages: pages}, nil
}

// HTMLExtractor wraps FromHTML.
type HTMLExtractor struct{}

func (HTMLExtractor) Extract(input []byte) (Document, error) {
	return FromHTML(input), nil
}

// TextExtractor passes plain text through; form feeds split pages.
type TextExtractor struct{}

func (TextExtractor) Extract(input []byte) (Document, error) {
	text := tidyLines(string(input))
	return Document{Text: text, Pages: strings.Count(text, "\f") + 1}, nil
}

// Reader is the document reader used by the pipeline. Extractors are keyed
// by lowercase file extension. When Cache is set, extracted text is reused
// for byte-identical inputs.
type Reader struct {
	Extractors map[string]Extractor
	Cache      *cache.TextCache
}

// NewReader returns a reader for .pdf, .html, .htm and .txt files.
func NewReader() *Reader {
	return &Reader{Extractors: map[string]Extractor{
		".pdf":  PDFExtractor{},
		".html": HTMLExtractor{},
		".htm":  HTMLExtractor{},
		".txt":  TextExtractor{},
	}}
}

// Supports reports whether name has an extension the reader handles.
func (r *Reader) Supports(name string) bool {
	_, ok := r.Extractors[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Read opens path, extracts its text and closes the file again. Any failure,
// including a panic inside an extractor, surfaces as *ExtractionError.
func (r *Reader) Read(path string) (doc domain.RawDocument, err error) {
	kind := strings.ToLower(filepath.Ext(path))
	ext, ok := r.Extractors[kind]
	if !ok {
		return domain.RawDocument{}, &ExtractionError{Path: path, Err: ErrUnsupported}
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.RawDocument{}, &ExtractionError{Path: path, Err: err}
	}
	defer f.Close()
	defer func() {
		if p := recover(); p != nil {
			doc = domain.RawDocument{}
			err = &ExtractionError{Path: path, Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	content, err := io.ReadAll(f)
	if err != nil {
		return domain.RawDocument{}, &ExtractionError{Path: path, Err: err}
	}
	var key string
	if r.Cache != nil {
		key = cache.KeyFrom(kind, content)
		if e, hit, cerr := r.Cache.Get(key); cerr == nil && hit {
			log.Debug().Str("file", path).Msg("extraction cache hit")
			return domain.RawDocument{Path: path, Content: content, Text: e.Text, Pages: e.Pages}, nil
		}
	}
	out, err := ext.Extract(content)
	if err != nil {
		return domain.RawDocument{}, &ExtractionError{Path: path, Err: err}
	}
	if r.Cache != nil {
		if cerr := r.Cache.Save(key, cache.Entry{Text: out.Text, Pages: out.Pages}); cerr != nil {
			log.Debug().Err(cerr).Str("file", path).Msg("extraction cache save failed")
		}
	}
	return domain.RawDocument{Path: path, Content: content, Text: out.Text, Pages: out.Pages}, nil
}
