package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"quizshow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTiers(t *testing.T) {
	tiers, err := parseTiers("all")
	require.NoError(t, err)
	assert.Len(t, tiers, 3)

	tiers, err = parseTiers("hard")
	require.NoError(t, err)
	assert.Equal(t, []quizshow.Tier{quizshow.TierHard}, tiers)

	_, err = parseTiers("impossible")
	assert.Error(t, err)
}

func TestImportExportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.yaml")
	out := filepath.Join(dir, "out.yaml")
	db := filepath.Join(dir, "quiz.db")

	require.NoError(t, quizshow.WriteCatalogFile(src, quizshow.DefaultCatalog()))
	require.NoError(t, runImport(src, db))
	require.NoError(t, runImport(src, db))
	require.NoError(t, runExport(out, db))

	exported, err := quizshow.LoadCatalogFile(out)
	require.NoError(t, err)
	assert.Len(t, exported.Questions, 15)

	played, err := openCatalog("", db)
	require.NoError(t, err)
	assert.Len(t, played.Questions, 15)

	assert.Error(t, runImport("", db))
	assert.Error(t, runExport(out, ""))
}

func TestOpenCatalogFallsBackToBuiltIn(t *testing.T) {
	c, err := openCatalog("", filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	assert.Equal(t, quizshow.DefaultCatalog().Questions[0].Text, c.Questions[0].Text)

	c, err = openCatalog("", "")
	require.NoError(t, err)
	assert.Len(t, c.Questions, 15)
}

func TestTerminalRendersAndHandlesCommands(t *testing.T) {
	var out bytes.Buffer
	game := quizshow.NewGame(nil, quizshow.GameConfig{RNG: quizshow.NewSeededRNG(4)})
	term := &terminal{out: &out, game: game}
	game.OnChange(func(s quizshow.Snapshot) { term.render(s) })

	game.Start()
	s := game.Snapshot()
	assert.Contains(t, out.String(), "Question 1 of 15 for 10 stickers")
	assert.Contains(t, out.String(), s.Question.Text)
	assert.Contains(t, out.String(), "Lifelines left: split, hint, poll, trace")

	out.Reset()
	assert.True(t, term.handle("5"))
	assert.Contains(t, out.String(), ": -")

	out.Reset()
	assert.True(t, term.handle("5"))
	assert.Contains(t, out.String(), "split is not available")

	out.Reset()
	assert.True(t, term.handle("h"))
	assert.Contains(t, out.String(), "Documentation:")

	out.Reset()
	assert.True(t, term.handle("zz"))
	assert.Contains(t, out.String(), `unknown command "zz"`)

	assert.True(t, term.handle(""))
	assert.False(t, term.handle("q"))
	game.Stop()
}

func TestTerminalSummary(t *testing.T) {
	var out bytes.Buffer
	term := &terminal{out: &out, game: quizshow.NewGame(nil, quizshow.GameConfig{})}

	done := term.render(quizshow.Snapshot{Status: quizshow.StatusWalkAway, Winnings: 200})
	assert.True(t, done)
	assert.Contains(t, out.String(), "You Walked Away")
	assert.Contains(t, out.String(), "You decided to walk away with 200 GitHub Stickers!")
}
