package report

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/dbsmedya/phpmigrate/internal/types"
)

// ============================================================================
// Test Helpers
// ============================================================================

func newFile(t *testing.T, name string) *types.PHPFile {
	t.Helper()
	// Absolute fixture paths keep the rendered output independent of the
	// test working directory.
	return types.NewPHPFile(filepath.Join(t.TempDir(), name))
}

func addClass(file *types.PHPFile, name string, line int, extends string) *types.PHPClass {
	class := types.NewPHPClass(name, line)
	class.Extends = extends
	file.Classes.Set(name, class)
	return class
}

func addDynamic(class *types.PHPClass, name string, line int) {
	class.DynamicProperties.Set(name, types.DynamicProperty{Name: name, Line: line})
}

func addFeature(file *types.PHPFile, kind string, line int, text string) {
	file.DeprecatedFeatures = append(file.DeprecatedFeatures, types.DeprecatedFeature{
		Kind: kind,
		Line: line,
		Text: text,
	})
}

// ============================================================================
// Build Tests
// ============================================================================

func TestBuild_NoFindings(t *testing.T) {
	file := newFile(t, "clean.php")
	addClass(file, "Clean", 0, "")

	got := NewBuilder(nil).Build([]*types.PHPFile{file})

	if got != "" {
		t.Errorf("Build() = %q, want empty report", got)
	}
}

func TestBuild_DeprecatedSection(t *testing.T) {
	file := newFile(t, "legacy.php")
	addFeature(file, types.FeatureStringInterpolation, 0, `$s = "hello ${name}";`)
	addFeature(file, types.FeatureFunction, 2, "$x = utf8_encode($y);")

	got := NewBuilder(nil).Build([]*types.PHPFile{file})

	want := strings.Join([]string{
		file.Path,
		`    1: string interpolation $s = "hello ${name}";`,
		"    3: function $x = utf8_encode($y);",
		"",
	}, "\n")

	if got != want {
		t.Errorf("Build() =\n%q\nwant\n%q", got, want)
	}
}

func TestBuild_DynamicSection(t *testing.T) {
	file := newFile(t, "widget.php")
	widget := addClass(file, "Widget", 4, "")
	addDynamic(widget, "cache", 6)
	addDynamic(widget, "tmp", 8)

	externalUsed := map[string]struct{}{"cache": {}}
	got := NewBuilder(externalUsed).Build([]*types.PHPFile{file})

	want := strings.Join([]string{
		"class Widget -- " + file.Path + ":5",
		"    7: $cache",
		"    9: $tmp",
		"",
		"    public $cache;",
		"    private $tmp;",
		"",
		"",
	}, "\n")

	if got != want {
		t.Errorf("Build() =\n%q\nwant\n%q", got, want)
	}
}

func TestBuild_ExtendsInHeader(t *testing.T) {
	file := newFile(t, "child.php")
	child := addClass(file, "Child", 0, "Base")
	addDynamic(child, "extra", 2)

	got := NewBuilder(nil).Build([]*types.PHPFile{file})

	wantHeader := "class Child extends Base -- " + file.Path + ":1"
	if !strings.HasPrefix(got, wantHeader+"\n") {
		t.Errorf("Build() header = %q, want prefix %q", got, wantHeader)
	}
}

func TestBuild_PlaceholderClassHeader(t *testing.T) {
	file := newFile(t, "toplevel.php")
	placeholder, _ := file.Classes.Get("")
	addDynamic(placeholder, "loose", 0)

	got := NewBuilder(nil).Build([]*types.PHPFile{file})

	// The placeholder renders its declaration as "class " with no name.
	wantHeader := "class  -- " + file.Path + ":1"
	if !strings.HasPrefix(got, wantHeader+"\n") {
		t.Errorf("Build() header = %q, want prefix %q", got, wantHeader)
	}
}

func TestBuild_BothSections(t *testing.T) {
	file := newFile(t, "mixed.php")
	addFeature(file, types.FeatureFunction, 0, "utf8_decode($a);")
	box := addClass(file, "Box", 2, "")
	addDynamic(box, "lid", 4)

	got := NewBuilder(nil).Build([]*types.PHPFile{file})

	want := strings.Join([]string{
		file.Path,
		"    1: function utf8_decode($a);",
		"",
		"class Box -- " + file.Path + ":3",
		"    5: $lid",
		"",
		"    private $lid;",
		"",
		"",
	}, "\n")

	if got != want {
		t.Errorf("Build() =\n%q\nwant\n%q", got, want)
	}
}

func TestBuild_SectionOrderAcrossFiles(t *testing.T) {
	// Section one lists every file with deprecated constructs before any
	// dynamic-property entry appears.
	first := newFile(t, "one.php")
	addFeature(first, types.FeatureFunction, 0, "utf8_encode($a);")

	second := newFile(t, "two.php")
	box := addClass(second, "Box", 0, "")
	addDynamic(box, "x", 1)
	addFeature(second, types.FeatureStringInterpolation, 3, `"${late}"`)

	got := NewBuilder(nil).Build([]*types.PHPFile{first, second})

	firstIdx := strings.Index(got, "one.php")
	secondIdx := strings.Index(got, "two.php")
	classIdx := strings.Index(got, "class Box")
	if firstIdx < 0 || secondIdx < 0 || classIdx < 0 {
		t.Fatalf("missing entries in report:\n%s", got)
	}
	if !(firstIdx < secondIdx && secondIdx < classIdx) {
		t.Errorf("sections out of order:\n%s", got)
	}
}

func TestBuild_VisibilityFromGlobalUse(t *testing.T) {
	// The external-use set spans files: a property accessed in another file
	// makes the suggestion public.
	producer := newFile(t, "producer.php")
	box := addClass(producer, "Box", 0, "")
	addDynamic(box, "shared", 1)
	addDynamic(box, "internal", 2)

	externalUsed := map[string]struct{}{"shared": {}}
	got := NewBuilder(externalUsed).Build([]*types.PHPFile{producer})

	if !strings.Contains(got, "    public $shared;") {
		t.Errorf("shared should be public:\n%s", got)
	}
	if !strings.Contains(got, "    private $internal;") {
		t.Errorf("internal should be private:\n%s", got)
	}
}

// ============================================================================
// Summarize Tests
// ============================================================================

func TestSummarize(t *testing.T) {
	first := newFile(t, "one.php")
	addFeature(first, types.FeatureFunction, 0, "utf8_encode($a);")
	addFeature(first, types.FeatureStringInterpolation, 1, `"${x}"`)

	second := newFile(t, "two.php")
	box := addClass(second, "Box", 0, "")
	addDynamic(box, "a", 1)
	addDynamic(box, "b", 2)
	crate := addClass(second, "Crate", 5, "")
	addDynamic(crate, "c", 6)

	clean := newFile(t, "clean.php")

	s := Summarize([]*types.PHPFile{first, second, clean})

	if s.FilesWithFeatures != 1 {
		t.Errorf("FilesWithFeatures = %d, want 1", s.FilesWithFeatures)
	}
	if s.DeprecatedFeatures != 2 {
		t.Errorf("DeprecatedFeatures = %d, want 2", s.DeprecatedFeatures)
	}
	if s.ClassesWithDynamic != 2 {
		t.Errorf("ClassesWithDynamic = %d, want 2", s.ClassesWithDynamic)
	}
	if s.DynamicProperties != 3 {
		t.Errorf("DynamicProperties = %d, want 3", s.DynamicProperties)
	}
}
