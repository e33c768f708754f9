package mcp

import (
	"context"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cynageos/calibrate/internal/canvas"
	"github.com/cynageos/calibrate/internal/display"
	"github.com/cynageos/calibrate/internal/hyprconf"
)

var errNotConfirmed = errors.New("save_layout requires confirm=true; review the preview_layout output first")

func (s *Server) format(legacy *bool) hyprconf.Format {
	f := s.config.Format()
	if legacy != nil {
		f.IncludeTransform = !*legacy
	}
	return f
}

func displayInfos(records []display.Record, f hyprconf.Format) []DisplayInfo {
	out := make([]DisplayInfo, 0, len(records))
	for _, rec := range records {
		out = append(out, DisplayInfo{
			Name:     rec.Name,
			Width:    rec.Width,
			Height:   rec.Height,
			X:        rec.X,
			Y:        rec.Y,
			Rotation: rec.Rotation.Degrees(),
			Line:     f.Line(rec),
		})
	}
	return out
}

// enumerate lists the displays and loads them onto a fresh canvas.
func (s *Server) enumerate(ctx context.Context) (*canvas.Model, error) {
	records, err := s.backend.Monitors(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("backend %s reported no displays", s.backend.Name())
	}
	return canvas.New(s.config.Geometry(), display.NewRegistry(records)), nil
}

// applyEdits performs moves then rotations. Moves clamped by the canvas are
// reported as warnings.
func applyEdits(m *canvas.Model, moves []Move, rotations []Rotate) ([]string, error) {
	var warnings []string
	for _, mv := range moves {
		if _, err := m.PlaceReal(mv.Name, mv.X, mv.Y); err != nil {
			return nil, fmt.Errorf("move %q: %w", mv.Name, err)
		}
	}
	for _, r := range rotations {
		if r.Degrees%90 != 0 || r.Degrees < 0 || r.Degrees >= 360 {
			return nil, fmt.Errorf("rotate %q: degrees must be 0, 90, 180 or 270, got %d", r.Name, r.Degrees)
		}
		if err := m.SetRotation(r.Name, display.Rotation(r.Degrees/90)); err != nil {
			return nil, fmt.Errorf("rotate %q: %w", r.Name, err)
		}
	}

	snapshot := m.Snapshot()
	for _, mv := range moves {
		for _, rec := range snapshot {
			if rec.Name == mv.Name && (rec.X != mv.X || rec.Y != mv.Y) {
				warnings = append(warnings, fmt.Sprintf("%s requested at %d,%d was clamped to %d,%d", mv.Name, mv.X, mv.Y, rec.X, rec.Y))
			}
		}
	}
	return warnings, nil
}

func (s *Server) handleListDisplays(ctx context.Context, _ *mcpsdk.CallToolRequest, _ ListDisplaysInput) (*mcpsdk.CallToolResult, ListDisplaysOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.backend.Monitors(ctx)
	if err != nil {
		s.logger.Error("list_displays failed", "error", err)
		return nil, ListDisplaysOutput{}, err
	}
	reg := display.NewRegistry(records)
	s.logger.Info("list_displays", "count", reg.Len())

	out := ListDisplaysOutput{
		Backend:  s.backend.Name(),
		Displays: displayInfos(reg.Records(), s.format(nil)),
	}
	if s.saver != nil {
		out.ConfigPath = s.saver.Path
	}
	return nil, out, nil
}

func (s *Server) preview(ctx context.Context, moves []Move, rotations []Rotate, legacy *bool) (hyprconf.Preview, []display.Record, []string, error) {
	if s.saver == nil {
		return hyprconf.Preview{}, nil, nil, fmt.Errorf("no monitor config path configured")
	}
	m, err := s.enumerate(ctx)
	if err != nil {
		return hyprconf.Preview{}, nil, nil, err
	}
	warnings, err := applyEdits(m, moves, rotations)
	if err != nil {
		return hyprconf.Preview{}, nil, nil, err
	}

	saver := *s.saver
	saver.Format = s.format(legacy)
	snapshot := m.Snapshot()
	p, err := saver.Preview(snapshot)
	if err != nil {
		return hyprconf.Preview{}, nil, nil, err
	}
	return p, snapshot, warnings, nil
}

func (s *Server) handlePreviewLayout(ctx context.Context, _ *mcpsdk.CallToolRequest, args LayoutInput) (*mcpsdk.CallToolResult, PreviewLayoutOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, snapshot, warnings, err := s.preview(ctx, args.Moves, args.Rotations, args.Legacy)
	if err != nil {
		s.logger.Error("preview_layout failed", "error", err)
		return nil, PreviewLayoutOutput{}, err
	}
	s.logger.Info("preview_layout", "moves", len(args.Moves), "rotations", len(args.Rotations), "changed", p.Changed())

	return nil, PreviewLayoutOutput{
		Path:     p.Path,
		Text:     p.Next,
		Current:  p.Current,
		Changed:  p.Changed(),
		Displays: displayInfos(snapshot, s.format(args.Legacy)),
		Warnings: warnings,
	}, nil
}

func (s *Server) handleSaveLayout(ctx context.Context, _ *mcpsdk.CallToolRequest, args SaveLayoutInput) (*mcpsdk.CallToolResult, SaveLayoutOutput, error) {
	if !args.Confirm {
		return nil, SaveLayoutOutput{}, errNotConfirmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, _, warnings, err := s.preview(ctx, args.Moves, args.Rotations, args.Legacy)
	if err != nil {
		s.logger.Error("save_layout failed", "error", err)
		return nil, SaveLayoutOutput{}, err
	}

	res, err := s.saver.Commit(ctx, p.Next)
	if err != nil {
		return nil, SaveLayoutOutput{}, err
	}
	out := SaveLayoutOutput{
		Path:     res.Path,
		Bytes:    res.Bytes,
		Lines:    res.Lines,
		Summary:  res.String(),
		Warnings: warnings,
	}

	// Reload failures are reported but never fail the tool call.
	if err := s.saver.Reload(ctx); err != nil {
		out.ReloadError = err.Error()
	} else {
		out.Reloaded = s.saver.Reloader != nil
	}
	return nil, out, nil
}
