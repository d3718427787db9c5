package palette

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nm3210/colordescriptors-go/internal/config"
	"github.com/nm3210/colordescriptors-go/internal/services/pubsub"
	"github.com/nm3210/colordescriptors-go/internal/services/testutil"
	"github.com/nm3210/colordescriptors-go/pkg/descriptor"
)

func setup(t *testing.T) (*Service, *pubsub.PubSub) {
	t.Helper()
	testDB, cleanup := testutil.SetupTestDB(t)
	t.Cleanup(cleanup)

	ps := pubsub.New()
	return NewService(testDB.PresetRepo, ps, nil, descriptor.InterpolationHSI), ps
}

func TestCreate_CanonicalizesDescriptor(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, Input{Name: "Sunset", Descriptor: "(CFF0000,c0000ff;3)", Mode: "rgbw"})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "sunset", p.Name)
	assert.Equal(t, "cff0000,c0000ff;3", p.Descriptor)
	assert.Equal(t, "RGBW", p.Mode)
	assert.True(t, p.IsGradient)

	single, err := svc.Create(ctx, Input{Name: "red", Descriptor: "CFF0000"})
	require.NoError(t, err)
	assert.Equal(t, "cff0000", single.Descriptor)
	assert.Equal(t, "HSI", single.Mode)
	assert.False(t, single.IsGradient)
}

func TestCreate_Rejects(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, Input{Name: "ok", Descriptor: "cff0000"})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   Input
		want error
	}{
		{"bad descriptor", Input{Name: "bad", Descriptor: "cgg0000"}, descriptor.ErrParse},
		{"bad gradient", Input{Name: "bad", Descriptor: "cff0000;x"}, descriptor.ErrParse},
		{"bad name", Input{Name: "has space", Descriptor: "cff0000"}, descriptor.ErrInvalidInput},
		{"empty name", Input{Name: "", Descriptor: "cff0000"}, descriptor.ErrInvalidInput},
		{"descriptor as name", Input{Name: "c00ff00", Descriptor: "cff0000"}, descriptor.ErrInvalidInput},
		{"bad mode", Input{Name: "bad", Descriptor: "cff0000", Mode: "lab"}, descriptor.ErrInvalidInput},
		{"duplicate", Input{Name: "OK", Descriptor: "c00ff00"}, ErrPresetExists},
		{"special name", Input{Name: "rainbow", Descriptor: "c00ff00"}, ErrPresetExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			assert.True(t, errors.Is(err, tt.want), "error = %v, want %v", err, tt.want)
		})
	}
}

func TestGetUpdateDelete(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, Input{Name: "ember", Descriptor: "cff4000"})
	require.NoError(t, err)

	byID, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "ember", byID.Name)

	byName, err := svc.Get(ctx, "EMBER")
	require.NoError(t, err)
	assert.Equal(t, p.ID, byName.ID)

	updated, err := svc.Update(ctx, "ember", Input{Descriptor: "cff4000,cff0000;2", Mode: "RGBW"})
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, "ember", updated.Name)
	assert.Equal(t, "cff4000,cff0000;2", updated.Descriptor)
	assert.True(t, updated.IsGradient)

	renamed, err := svc.Update(ctx, p.ID, Input{Name: "coal", Descriptor: "c200000"})
	require.NoError(t, err)
	assert.Equal(t, "coal", renamed.Name)

	require.NoError(t, svc.Delete(ctx, "coal"))
	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPresetNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "coal"), ErrPresetNotFound)
	_, err = svc.Update(ctx, "coal", Input{Descriptor: "cff0000"})
	assert.ErrorIs(t, err, ErrPresetNotFound)
}

func TestUpdate_RenameClash(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, Input{Name: "one", Descriptor: "cff0000"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, Input{Name: "two", Descriptor: "c00ff00"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "two", Input{Name: "one", Descriptor: "c00ff00"})
	assert.ErrorIs(t, err, ErrPresetExists)
}

func TestPublishesEvents(t *testing.T) {
	svc, ps := setup(t)
	ctx := context.Background()

	sub := ps.Subscribe(pubsub.TopicPresetUpdated, "", 10)
	defer ps.Unsubscribe(sub)

	_, err := svc.Create(ctx, Input{Name: "flash", Descriptor: "cffffff"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "flash"))

	for _, want := range []string{ActionCreated, ActionDeleted} {
		select {
		case msg := <-sub.Channel:
			ev, ok := msg.(Event)
			require.True(t, ok, "unexpected message %T", msg)
			assert.Equal(t, want, ev.Action)
			assert.Equal(t, "flash", ev.Preset.Name)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s event", want)
		}
	}
}

func TestSeed(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	file := &config.PresetFile{Presets: []config.PresetSpec{
		{Name: "dawn", Descriptor: "c000020,cff8000;5", Mode: "rgbw", Description: "night into morning"},
		{Name: "dusk", Descriptor: "h0200ff0ff"},
	}}

	created, updated, err := svc.Seed(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, 0, updated)

	file.Presets[1].Descriptor = "h0280ff0ff"
	created, updated, err = svc.Seed(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Equal(t, 2, updated)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "dawn", all[0].Name)
	require.NotNil(t, all[0].Description)
	assert.Equal(t, "night into morning", *all[0].Description)
	assert.Equal(t, "h0280ff0ff", all[1].Descriptor)

	created, updated, err = svc.Seed(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, created+updated)
}

func TestSeed_InvalidEntry(t *testing.T) {
	svc, _ := setup(t)

	_, _, err := svc.Seed(context.Background(), &config.PresetFile{Presets: []config.PresetSpec{
		{Name: "broken", Descriptor: "nope"},
	}})
	assert.ErrorIs(t, err, descriptor.ErrParse)
}

func TestResolve(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, Input{Name: "pair", Descriptor: "cff000000,c00ff0000;1", Mode: "RGBW"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		word  string
		steps int
		mode  descriptor.InterpolationMode
		want  []string
	}{
		{"single color", "cff0000", 0, "", []string{"cff0000"}},
		{"gradient default mode", "h0000ff0ff,h0680ff0ff;1", 0, "", []string{"h0000ff0ff", "h0340ff0ff", "h0680ff0ff"}},
		{"gradient explicit mode", "cff000000,c00ff0000;1", 0, descriptor.InterpolationRGBW, []string{"cff000000", "c7f7f0000", "c00ff0000"}},
		{"preset keeps its mode", "pair", 0, descriptor.InterpolationHSI, []string{"cff000000", "c7f7f0000", "c00ff0000"}},
		{"special", "Rainbow", 2, "", []string{"h0000ff0ff", "h0780ff0ff", "h0f00ff0ff", "h1680ff0ff"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := svc.Resolve(ctx, tt.word, tt.steps, false, tt.mode, 0)
			require.NoError(t, err)

			colors := g.Colors()
			got := make([]string, len(colors))
			for i := range colors {
				got[i] = colors[i].Encode()
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Resolve(ctx, "unknown-preset", 0, false, "", 0)
	assert.ErrorIs(t, err, descriptor.ErrParse)

	_, err = svc.Resolve(ctx, "cff0000", 0, false, descriptor.InterpolationMode("LAB"), 0)
	assert.ErrorIs(t, err, descriptor.ErrInvalidInput)
}

func TestResolve_Limit(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, Input{Name: "long", Descriptor: "cff0000,c0000ff;20"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		word  string
		steps int
	}{
		{"descriptor word", "cff0000,c0000ff;9", 0},
		{"overflowing steps", "cff0000,c0000ff;9223372036854775807", 0},
		{"preset", "long", 0},
		{"special", "rainbow", 9},
		{"special with overflowing steps", "rainbow", math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Resolve(ctx, tt.word, tt.steps, false, "", 10)
			assert.ErrorIs(t, err, descriptor.ErrTooManyColors)
		})
	}

	g, err := svc.Resolve(ctx, "cff0000,c0000ff;8", 0, false, "", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, g.Len())

	g, err = svc.Resolve(ctx, "off", math.MaxInt, false, "", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())
}

func TestCreate_RejectsOversizedGradient(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.Create(context.Background(), Input{Name: "huge", Descriptor: "cff0000,c0000ff;5000000"})
	assert.ErrorIs(t, err, descriptor.ErrTooManyColors)
}

func TestSpecials(t *testing.T) {
	svc, _ := setup(t)
	assert.Equal(t, []string{"off", "rainbow", "white"}, svc.Specials())
	assert.Equal(t, descriptor.InterpolationHSI, svc.DefaultMode())
}
