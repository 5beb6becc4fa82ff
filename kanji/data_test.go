package kanji

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFixture builds a minimal ten-file data directory exercising the
// cross-file references of §4.7's load order: 一 starts as a Jouyou entry,
// then picks up a JLPT level, a frequency rank, and a Kentei kyu from the
// later files, matching the walk-through in §8 (S7-S9).
func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	write := func(name, content string) {
		full := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}

	write("ucd.txt",
		"Code\tName\tBlock\tVersion\tRadical\tStrokes\tVStrokes\tPinyin\tMorohashiId\tNelsonIds\tSources\tJSource\tJoyo\tJinmei\tLinkCodes\tLinkNames\tLinkType\tMeaning\tOn\tKun\n"+
			"4E00\t一\tCJK\t1.1\t01\t01\t\tyi1\t\t\tU\t\tY\tN\t\t\t\tone\tイチ\t\n"+
			"4E8C\t二\tCJK\t1.1\t01\t02\t\ter4\t\t\tU\t\tN\tN\t\t\t\ttwo\tニ\t\n"+
			"5F0C\t弌\tCJK\t1.1\t01\t04\t\t\t\t\tU\t\tN\tY\t4E00\t一\t=j\t\t\tひと\n")

	write("radicals.txt", "Number\tName\tLongName\tReading\n"+"1\t一\tone\tいち\n")

	write("frequency-readings.txt", "Name\tReading\n")

	write("jouyou.txt",
		"Number\tName\tRadical\tOldNames\tYear\tStrokes\tGrade\tMeaning\tReading\n"+
			"1\t一\t1\t\t\t1\tG1\tone\tイチ\n")

	write("linked-jinmei.txt", "一\t弌\n")

	write("jinmei.txt", "Number\tName\tRadical\tOldNames\tYear\tReason\tReading\n")

	write("extra.txt", "Number\tName\tRadical\tStrokes\tMeaning\tReading\n")

	for _, level := range jlptLoadOrder {
		content := ""
		if level == N5 {
			content = "一\n"
		}
		write("jlpt/"+level.fileName()+".txt", content)
	}

	write("frequency.txt", "二\n一\n")

	for _, kyu := range kenteiLoadOrder {
		content := ""
		if kyu == K10 {
			content = "一\n"
		}
		write("kentei/"+kyu.fileName()+".txt", content)
	}

	return dir
}

func TestLoadBuildsCatalog(t *testing.T) {
	dir := writeFixture(t)
	d, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, d.Errors, "fixture should satisfy every catalog invariant")

	k := d.FindByName("一")
	require.NotNil(t, k)
	assert.Equal(t, Jouyou, k.Type)
	assert.Equal(t, uint32(2), k.Frequency)
	assert.Equal(t, G1, k.Grade)
	assert.Equal(t, N5, k.Level)
	assert.Equal(t, K10, k.Kyu)

	radical := d.UcdRadical(k.Name, nil)
	require.NotNil(t, radical)
	assert.Equal(t, uint8(1), radical.Number)
}

func TestFindByNameIdentity(t *testing.T) {
	d, err := Load(writeFixture(t))
	require.NoError(t, err)

	k := d.FindByName("一")
	require.NotNil(t, k)
	assert.Same(t, k, d.FindByName("一"))
}

func TestFindByFrequencyAndBuckets(t *testing.T) {
	d, err := Load(writeFixture(t))
	require.NoError(t, err)

	k := d.FindByName("一")
	require.NotNil(t, k)
	assert.Same(t, k, d.FindByFrequency(k.Frequency))
	assert.Nil(t, d.FindByFrequency(9999))

	bucket0 := d.FrequencyList(0)
	assert.Len(t, bucket0, 2) // 二 (rank 1) and 一 (rank 2) both fall in the first 500
	assert.Equal(t, uint32(3), d.MaxFrequency())
}

func TestLinkedJinmeiDerivesReadingAndMeaning(t *testing.T) {
	d, err := Load(writeFixture(t))
	require.NoError(t, err)
	require.Empty(t, d.Errors)

	linked := d.FindByName("弌")
	require.NotNil(t, linked)
	assert.Equal(t, LinkedJinmei, linked.Type)
	require.NotNil(t, linked.Link)
	assert.Equal(t, "一", linked.Link.Name)
	assert.Equal(t, "イチ", linked.Reading)
	assert.Equal(t, "one", linked.Meaning)
}

func TestCateloguesFrequencyOnlyEntry(t *testing.T) {
	d, err := Load(writeFixture(t))
	require.NoError(t, err)

	other := d.FindByName("二")
	require.NotNil(t, other)
	assert.Equal(t, Frequency, other.Type)
	assert.Equal(t, uint32(1), other.Frequency)
	assert.Equal(t, "two", other.Meaning)
}
