package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	surveyform "github.com/Md-Salehan/servey-app-v2-sub000"
	"github.com/Md-Salehan/servey-app-v2-sub000/internal/config"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/fields"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/location"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/prompt"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/receipt"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/schema"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/session"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/signature"
)

func main() {
	source := flag.String("source", "schema.json", "field descriptor JSON path or URL")
	operation := flag.String("operation", "", "treat the source as an OpenAPI document and project this operation")
	configPath := flag.String("config", "", "settings file (YAML)")
	output := flag.String("output", "", "write the submission payload to this file (stdout if empty)")
	receiptPath := flag.String("receipt", "", "write a text receipt to this file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger, err := cfg.Logger()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	form, err := loadForm(ctx, *source, *operation, cfg.Capture.SchemaOptions())
	if err != nil {
		log.Fatalf("Failed to load form: %v", err)
	}
	visual, err := cfg.Theme.Resolve()
	if err != nil {
		log.Fatalf("Failed to resolve theme: %v", err)
	}

	driver := prompt.NewSurveyDriver()
	gate, err := location.NewGate(terminalProvider{})
	if err != nil {
		log.Fatalf("Failed to build location gate: %v", err)
	}

	sess := surveyform.NewSession(form,
		session.WithDriver(driver),
		session.WithLogger(logger),
		session.WithTheme(visual),
		session.WithLocationGate(gate),
		session.WithImageSource(&fileImageSource{driver: driver}),
		session.WithSignatureSource(&typedSignatureSource{driver: driver}),
	)

	if err := sess.Run(ctx); err != nil {
		if errors.Is(err, surveyform.ErrAborted) {
			log.Fatal("Aborted")
		}
		log.Fatalf("Failed to run form: %v", err)
	}

	payload, err := sess.SubmitPayload()
	if err != nil {
		log.Fatalf("Submission blocked: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, payload, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Submission written to %s\n", *output)
	} else {
		fmt.Println(string(payload))
	}

	if *receiptPath != "" {
		if err := writeReceipt(form, sess, *receiptPath); err != nil {
			log.Fatalf("Failed to write receipt: %v", err)
		}
		fmt.Printf("Receipt written to %s\n", *receiptPath)
	}
}

func loadForm(ctx context.Context, source, operation string, opts []schema.NormalizeOption) (schema.Schema, error) {
	path := strings.TrimSpace(source)
	if path == "" {
		return schema.Schema{}, errors.New("source is required")
	}

	var src schema.Source
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		src = schema.SourceFromURL(path, nil)
	} else {
		src = schema.SourceFromFile(path)
	}

	if operation == "" {
		return surveyform.LoadSchema(ctx, src, opts...)
	}
	raw, err := src.Load(ctx)
	if err != nil {
		return schema.Schema{}, err
	}
	return surveyform.LoadSchemaFromOpenAPI(ctx, raw, operation, opts...)
}

func writeReceipt(form schema.Schema, sess *surveyform.Session, path string) error {
	entries, err := sess.Submit()
	if err != nil {
		return err
	}
	engine, err := receipt.NewEngine()
	if err != nil {
		return err
	}
	text, err := engine.Render(form, entries, time.Now())
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

// terminalProvider has no positioning hardware; every request falls through
// to the manual entry flow.
type terminalProvider struct{}

func (terminalProvider) RequestPermission(context.Context) error {
	return nil
}

func (terminalProvider) CurrentPosition(context.Context, location.PositionOptions) (location.Position, error) {
	return location.Position{}, location.ErrPositionUnavailable
}

// fileImageSource asks for a local path and stats it, so size gating works on
// real files.
type fileImageSource struct {
	driver prompt.Driver
}

func (s *fileImageSource) Pick(ctx context.Context) (fields.ImageCandidate, error) {
	path, err := s.driver.Input(ctx, prompt.InputConfig{
		Message: "Path to image file",
	})
	if err != nil {
		return fields.ImageCandidate{}, err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return fields.ImageCandidate{}, os.ErrNotExist
	}
	info, err := os.Stat(path)
	if err != nil {
		return fields.ImageCandidate{}, err
	}
	return fields.ImageCandidate{
		URI:           "file://" + path,
		MimeType:      mime.TypeByExtension(filepath.Ext(path)),
		FileName:      filepath.Base(path),
		FileSizeBytes: info.Size(),
	}, nil
}

// typedSignatureSource approximates a signing gesture in the terminal: the
// typed name is traced as a stroke, one short segment per character.
type typedSignatureSource struct {
	driver prompt.Driver
}

func (s *typedSignatureSource) Events(ctx context.Context) (<-chan signature.PointerEvent, error) {
	name, err := s.driver.Input(ctx, prompt.InputConfig{
		Message: "Type your name to sign",
	})
	if err != nil {
		return nil, err
	}

	runes := []rune(strings.TrimSpace(name))
	events := make(chan signature.PointerEvent, len(runes)*4+2)
	x, y := 20.0, 120.0
	events <- signature.PointerEvent{Kind: signature.EventDown, Point: signature.Point{X: x, Y: y}}
	for i, r := range runes {
		rise := float64(int(r)%40) - 20
		for step := 0; step < 4; step++ {
			x += 3
			y = 120 + rise*float64(step%2) + float64(i%3)*4
			events <- signature.PointerEvent{Kind: signature.EventMove, Point: signature.Point{X: x, Y: y}}
		}
	}
	events <- signature.PointerEvent{Kind: signature.EventUp}
	close(events)
	return events, nil
}
