package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruby-ist/portfolio/internal/cache"
)

func writeFile(t *testing.T, root, rel, body string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestExtract_Markup(t *testing.T) {
	src := `<template>
  <div class="flex  mt-4
      md:p-2" :class="{ 'strict:color-primary': active, open: isOpen }">
    <NuxtLink class="no-scrollbar" to="/blogs">Blogs</NuxtLink>
    <img class="w-100p" />
    <span v-bind:class="[big ? 'fs-2rem' : 'fs-1rem']">x</span>
  </div>
</template>
<style scoped>
.card { content: "not-scanned"; }
</style>`

	got := Extract([]byte(src), ".vue")
	assert.Equal(t, []string{
		"flex", "fs-1rem", "fs-2rem", "md:p-2", "mt-4", "no-scrollbar", "strict:color-primary", "w-100p",
	}, got)
}

func TestExtract_ScriptLiterals(t *testing.T) {
	src := `<template>
  <nav :class="menu"></nav>
</template>
<script setup lang="ts">
const isOpen = ref(false)
const menu = computed(() => isOpen.value ? "mt-4 color-primary" : 'no-display')
</script>
<p class="p-1">const ignored = "outside-script"</p>`

	got := Extract([]byte(src), ".vue")
	assert.Equal(t, []string{"color-primary", "mt-4", "no-display", "p-1"}, got)
}

func TestExtract_AttributeUtilities(t *testing.T) {
	src := `<div flex mt-4 class="p-1" sm:gap-2 id="main">
  <input disabled v-else data-x aria-hidden :value="v" @click="go" />
  <details open></details>
</div>`

	got := Extract([]byte(src), ".vue")
	assert.Equal(t, []string{`[flex=""]`, `[mt-4=""]`, `[sm:gap-2=""]`, "p-1"}, got)
}

func TestExtract_LiteralFallback(t *testing.T) {
	src := "export const card = 'flex mt-4'\nconst x = `bd-rad-4-4-0-0`\nconst y = \"{bad} p-1\""
	got := Extract([]byte(src), ".ts")
	assert.Equal(t, []string{"bd-rad-4-4-0-0", "flex", "mt-4", "p-1"}, got)
}

func TestExtract_Markdown(t *testing.T) {
	src := "---\ndate: 2025-01-01\ntags: [go]\n---\n# Title\n\nText with <span class=\"color-primary\">html</span>.\n"
	assert.Equal(t, []string{"color-primary"}, Extract([]byte(src), ".md"))
}

func TestExtract_Empty(t *testing.T) {
	assert.Empty(t, Extract(nil, ".html"))
	assert.Empty(t, Extract([]byte(`<div class="">`), ".html"))
}

func TestScanner_Scan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app/app.vue", `<div class="flex mt-4"></div>`)
	writeFile(t, root, "app/pages/index.vue", `<main class="grid"></main>`)
	writeFile(t, root, "app/node_modules/pkg/x.vue", `<div class="ignored"></div>`)
	writeFile(t, root, "app/.nuxt/y.vue", `<div class="hidden-dir"></div>`)
	writeFile(t, root, "app/out/z.html", `<div class="excluded"></div>`)
	writeFile(t, root, "app/readme.txt", `class="not-scanned"`)

	s := New(Config{
		Root:       root,
		Sources:    []string{"app", "missing"},
		Extensions: []string{".vue", "html"},
		Exclude:    []string{"app/out"},
	})

	result, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"app/app.vue":         {"flex", "mt-4"},
		"app/pages/index.vue": {"grid"},
	}, result.Files)
	assert.Equal(t, 2, result.Scanned)
	assert.Zero(t, result.Cached)
}

func TestScanner_UsesCache(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "app/app.vue", `<div class="flex"></div>`)

	c, err := cache.New(cache.Config{Path: filepath.Join(root, ".folio", "cache.db"), MaxAge: time.Hour})
	require.NoError(t, err)
	defer c.Close()

	s := New(Config{Root: root, Sources: []string{"app"}, Extensions: []string{".vue"}, Cache: c})

	first, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Scanned)

	second, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, second.Cached)
	assert.Equal(t, first.Files, second.Files)

	require.NoError(t, os.WriteFile(path, []byte(`<div class="grid"></div>`), 0644))
	third, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, third.Scanned)
	assert.Equal(t, []string{"grid"}, third.Files["app/app.vue"])

	s.Forget(path)
	keys, err := c.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestScanner_RescansOlderCacheEntries(t *testing.T) {
	root := t.TempDir()
	src := `<div flex></div>`
	writeFile(t, root, "app/app.vue", src)

	c, err := cache.New(cache.Config{Path: filepath.Join(root, ".folio", "cache.db"), MaxAge: time.Hour})
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.Put("app/app.vue", cache.Hash([]byte(src)), []string{}))

	s := New(Config{Root: root, Sources: []string{"app"}, Extensions: []string{".vue"}, Cache: c})
	result, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Scanned)
	assert.Equal(t, []string{`[flex=""]`}, result.Files["app/app.vue"])
}

func TestScanner_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app/a.vue", `<div class="flex"></div>`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(Config{Root: root, Sources: []string{"app"}, Extensions: []string{".vue"}})
	_, err := s.Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanner_Accepts(t *testing.T) {
	s := New(Config{Root: "site", Extensions: []string{".vue"}, Exclude: []string{"dist"}})

	assert.True(t, s.Accepts(filepath.Join("site", "app", "app.vue")))
	assert.False(t, s.Accepts(filepath.Join("site", "app", "app.ts")))
	assert.False(t, s.Accepts(filepath.Join("site", "dist", "app.vue")))
	assert.False(t, s.Accepts(filepath.Join("site", "node_modules", "x", "app.vue")))
	assert.False(t, s.Accepts(filepath.Join("site", ".output", "app.vue")))
	assert.Equal(t, "app/app.vue", s.Key(filepath.Join("site", "app", "app.vue")))
}
