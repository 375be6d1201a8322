package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/courtside/internal/config"
	"github.com/cristianoliveira/courtside/internal/domain"
	"github.com/cristianoliveira/courtside/internal/storage/sqlite"
	"github.com/cristianoliveira/courtside/internal/tui/app"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct{ name string }

func (m fakeModel) Init() tea.Cmd                       { return nil }
func (m fakeModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return m, nil }
func (m fakeModel) View() string                        { return m.name }

type fakeAppClient struct {
	slotsKind domain.SlotKind
	ran       tea.Model
	runErr    error
}

func (f *fakeAppClient) CreateFeedModel() tea.Model { return fakeModel{name: "feed"} }

func (f *fakeAppClient) CreateSlotsModel(kind domain.SlotKind) tea.Model {
	f.slotsKind = kind
	return fakeModel{name: "slots"}
}

func (f *fakeAppClient) RunProgram(model tea.Model) error {
	f.ran = model
	return f.runErr
}

type fakeTUIFactory struct {
	client *fakeAppClient
	err    error
	calls  int
}

func (f *fakeTUIFactory) TUIClient(ctx context.Context) (app.Client, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.client, nil
}

type fakeStore struct {
	records   []domain.ApplicationRecord
	listOpts  sqlite.ListOptions
	listErr   error
	pruneDays int
	dryRun    bool
	pruned    int64
	pruneErr  error
}

func (f *fakeStore) ListApplications(ctx context.Context, opts sqlite.ListOptions) ([]domain.ApplicationRecord, error) {
	f.listOpts = opts
	return f.records, f.listErr
}

func (f *fakeStore) PruneApplications(ctx context.Context, days int, dryRun bool) (int64, error) {
	f.pruneDays = days
	f.dryRun = dryRun
	return f.pruned, f.pruneErr
}

type fakeHistoryClient struct {
	store *fakeStore
	err   error
}

func (f *fakeHistoryClient) History() (historyStore, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.store, nil
}

type fakeServeClient struct {
	addr  string
	flaky int
	err   error
}

func (f *fakeServeClient) Serve(ctx context.Context, addr string, flakyLikes int) error {
	f.addr = addr
	f.flaky = flakyLikes
	return f.err
}

type fakeVersionClient struct{ version string }

func (f fakeVersionClient) Version() string { return f.version }

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func panicMessage(fn func()) (msg interface{}) {
	defer func() { msg = recover() }()
	fn()
	return nil
}

func TestCommandsPanicWhenClientIsNil(t *testing.T) {
	builders := map[string]func(){
		"feed":    func() { NewFeedCmd(nil) },
		"slots":   func() { NewSlotsCmd(nil) },
		"history": func() { NewHistoryCmd(nil) },
		"serve":   func() { NewServeCmd(nil) },
		"version": func() { NewVersionCmd(nil) },
	}
	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			msg := panicMessage(build)
			require.NotNil(t, msg)
			assert.Contains(t, msg, "client dependency cannot be nil")
		})
	}
}

func TestFeedCmdRunsFeedModel(t *testing.T) {
	factory := &fakeTUIFactory{client: &fakeAppClient{}}
	_, err := execute(t, NewFeedCmd(factory))

	require.NoError(t, err)
	assert.Equal(t, 1, factory.calls)
	assert.Equal(t, fakeModel{name: "feed"}, factory.client.ran)
}

func TestFeedCmdPropagatesErrors(t *testing.T) {
	_, err := execute(t, NewFeedCmd(&fakeTUIFactory{err: errors.New("bad url")}))
	assert.EqualError(t, err, "bad url")

	client := &fakeAppClient{runErr: errors.New("no tty")}
	_, err = execute(t, NewFeedCmd(&fakeTUIFactory{client: client}))
	assert.EqualError(t, err, "no tty")
}

func TestFeedCmdRejectsArgs(t *testing.T) {
	factory := &fakeTUIFactory{client: &fakeAppClient{}}
	_, err := execute(t, NewFeedCmd(factory), "extra")
	assert.Error(t, err)
	assert.Zero(t, factory.calls)
}

func TestSlotsCmdKindFlag(t *testing.T) {
	factory := &fakeTUIFactory{client: &fakeAppClient{}}
	_, err := execute(t, NewSlotsCmd(factory), "--kind", "academies")

	require.NoError(t, err)
	assert.Equal(t, domain.KindAcademy, factory.client.slotsKind)
	assert.Equal(t, fakeModel{name: "slots"}, factory.client.ran)
}

func TestSlotsCmdDefaultsToConfiguredKind(t *testing.T) {
	config.Set("slot_kind", "academy")
	t.Cleanup(func() { config.Set("slot_kind", "activity") })

	factory := &fakeTUIFactory{client: &fakeAppClient{}}
	_, err := execute(t, NewSlotsCmd(factory))

	require.NoError(t, err)
	assert.Equal(t, domain.KindAcademy, factory.client.slotsKind)
}

func TestSlotsCmdInvalidKind(t *testing.T) {
	factory := &fakeTUIFactory{client: &fakeAppClient{}}
	_, err := execute(t, NewSlotsCmd(factory), "--kind", "tournament")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid slot kind")
	assert.Zero(t, factory.calls)
}

func TestHistoryCmdListsRecords(t *testing.T) {
	store := &fakeStore{records: []domain.ApplicationRecord{
		{ID: 1, SlotID: 101, Kind: domain.KindActivity, Title: "Saturday doubles", Outcome: domain.OutcomeApplied, CreatedAt: time.Now()},
	}}
	out, err := execute(t, NewHistoryCmd(&fakeHistoryClient{store: store}),
		"--kind", "activity", "--outcome", "applied", "--limit", "5", "--format", "simple")

	require.NoError(t, err)
	assert.Contains(t, out, "Saturday doubles")
	assert.Equal(t, sqlite.ListOptions{Kind: domain.KindActivity, Outcome: domain.OutcomeApplied, Limit: 5}, store.listOpts)
}

func TestHistoryCmdSearch(t *testing.T) {
	store := &fakeStore{records: []domain.ApplicationRecord{
		{ID: 3, SlotID: 103, Kind: domain.KindActivity, Title: "Night rally", Outcome: domain.OutcomeFailed, CreatedAt: time.Now()},
		{ID: 2, SlotID: 102, Kind: domain.KindActivity, Title: "Morning drills", Outcome: domain.OutcomeApplied, CreatedAt: time.Now()},
		{ID: 1, SlotID: 101, Kind: domain.KindActivity, Title: "Saturday doubles", Outcome: domain.OutcomeApplied, CreatedAt: time.Now()},
	}}
	out, err := execute(t, NewHistoryCmd(&fakeHistoryClient{store: store}),
		"--search", "^(night|saturday)", "--regex", "--limit", "1", "--format", "simple")

	require.NoError(t, err)
	assert.Zero(t, store.listOpts.Limit)
	assert.Contains(t, out, "Night rally")
	assert.NotContains(t, out, "Saturday doubles")
	assert.NotContains(t, out, "Morning drills")
}

func TestHistoryCmdInvalidRegex(t *testing.T) {
	_, err := execute(t, NewHistoryCmd(&fakeHistoryClient{store: &fakeStore{}}), "--search", "(", "--regex")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid search pattern")
}

func TestHistoryCmdEmpty(t *testing.T) {
	out, err := execute(t, NewHistoryCmd(&fakeHistoryClient{store: &fakeStore{}}))
	require.NoError(t, err)
	assert.Contains(t, out, "No applications recorded")
}

func TestHistoryCmdEmptyJSON(t *testing.T) {
	out, err := execute(t, NewHistoryCmd(&fakeHistoryClient{store: &fakeStore{}}), "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestHistoryCmdValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad kind", []string{"--kind", "x"}, "invalid slot kind"},
		{"bad outcome", []string{"--outcome", "maybe"}, "invalid outcome"},
		{"negative limit", []string{"--limit", "-1"}, "limit must not be negative"},
		{"bad format", []string{"--format", "yaml"}, "invalid format"},
		{"zero prune days", []string{"--prune-days", "0"}, "prune-days must be a positive integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeHistoryClient{store: &fakeStore{}}
			_, err := execute(t, NewHistoryCmd(client), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestHistoryCmdPrune(t *testing.T) {
	store := &fakeStore{pruned: 3}
	out, err := execute(t, NewHistoryCmd(&fakeHistoryClient{store: store}), "--prune-days", "30")

	require.NoError(t, err)
	assert.Equal(t, 30, store.pruneDays)
	assert.False(t, store.dryRun)
	assert.Contains(t, out, "Deleted 3 application(s) older than 30 days")
}

func TestHistoryCmdPruneDryRun(t *testing.T) {
	store := &fakeStore{pruned: 2}
	out, err := execute(t, NewHistoryCmd(&fakeHistoryClient{store: store}), "--prune-days", "7", "--dry-run")

	require.NoError(t, err)
	assert.True(t, store.dryRun)
	assert.Contains(t, out, "Would delete 2 application(s)")
}

func TestHistoryCmdErrors(t *testing.T) {
	_, err := execute(t, NewHistoryCmd(&fakeHistoryClient{err: errors.New("history_db is not configured")}))
	assert.EqualError(t, err, "history_db is not configured")

	store := &fakeStore{listErr: errors.New("disk I/O error")}
	_, err = execute(t, NewHistoryCmd(&fakeHistoryClient{store: store}))
	assert.EqualError(t, err, "list applications: disk I/O error")

	store = &fakeStore{pruneErr: errors.New("locked")}
	_, err = execute(t, NewHistoryCmd(&fakeHistoryClient{store: store}), "--prune-days", "1")
	assert.EqualError(t, err, "prune failed: locked")
}

func TestServeCmdUsesFlags(t *testing.T) {
	client := &fakeServeClient{}
	_, err := execute(t, NewServeCmd(client), "--addr", "127.0.0.1:9999", "--flaky-likes", "3")

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", client.addr)
	assert.Equal(t, 3, client.flaky)
}

func TestServeCmdDefaultsToConfiguredAddr(t *testing.T) {
	config.Set("serve_addr", "127.0.0.1:7070")
	t.Cleanup(func() { config.Set("serve_addr", "127.0.0.1:8080") })

	client := &fakeServeClient{}
	_, err := execute(t, NewServeCmd(client))

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7070", client.addr)
}

func TestServeCmdErrors(t *testing.T) {
	_, err := execute(t, NewServeCmd(&fakeServeClient{}), "--flaky-likes", "-1")
	assert.EqualError(t, err, "flaky-likes must not be negative")

	_, err = execute(t, NewServeCmd(&fakeServeClient{err: errors.New("address in use")}))
	assert.EqualError(t, err, "serve: address in use")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, NewVersionCmd(fakeVersionClient{version: "1.2.0+abc1234"}))
	require.NoError(t, err)
	assert.Equal(t, "courtside version 1.2.0+abc1234\n", out)
}
