package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/phpmigrate/internal/logger"
	"github.com/dbsmedya/phpmigrate/internal/resolver"
	"github.com/dbsmedya/phpmigrate/internal/scanner"
	"github.com/dbsmedya/phpmigrate/internal/types"
)

// outputWriter is used for printing output, can be overridden in tests
var outputWriter io.Writer = os.Stdout

// setOutputWriter sets the output writer (used for testing)
func setOutputWriter(w io.Writer) {
	outputWriter = w
}

// resetOutputWriter resets output to stdout (used for testing)
func resetOutputWriter() {
	outputWriter = os.Stdout
}

var classesDynamicOnly bool

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "Show the class hierarchy of a PHP tree",
	Long: `Classes scans the configured root and displays the inheritance tree
of every class found, after resolving dynamic properties against
ancestor declarations.

The view shows:
  - The extends tree, with classes that extend something outside the
    scan marked as roots
  - How many dynamic properties each class still carries
  - Every remaining dynamic property with its file and line

Example:
  phpmigrate classes --config phpmigrate.yaml --root ./src`,
	RunE: runClasses,
}

func init() {
	classesCmd.Flags().BoolVar(&classesDynamicOnly, "dynamic-only", false,
		"Only list dynamic properties, skip the tree")

	rootCmd.AddCommand(classesCmd)
}

func runClasses(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Apply CLI overrides
	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.Root, overrides.ReportPath)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize logger
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Discover files
	discovery, err := scanner.NewDiscovery(&cfg.Scan, log)
	if err != nil {
		return fmt.Errorf("failed to create discovery: %w", err)
	}
	fileSet, err := discovery.Discover()
	if err != nil {
		return fmt.Errorf("file discovery failed: %w", err)
	}

	// Scan every file
	sc := scanner.New(log)
	files := make([]*types.PHPFile, 0, fileSet.Len())
	for _, path := range fileSet.Paths {
		file, err := sc.ScanFile(path)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		files = append(files, file)
	}

	// Resolve inheritance before display
	resolver.New(files, log).Resolve()

	h := resolver.BuildHierarchy(files)
	if h.Len() == 0 {
		fmt.Fprintf(outputWriter, "No classes found under %s\n", cfg.Scan.Root)
		return nil
	}

	if !classesDynamicOnly {
		printClassTree(h)
	}

	fmt.Fprintln(outputWriter)
	printSection("Dynamic Properties")
	printDynamicProperties(files)

	return nil
}

// printClassTree renders the extends tree side by side with a summary panel.
func printClassTree(h *resolver.Hierarchy) {
	roots := h.Roots()
	tree := buildClassTree(h, roots)

	dynamicClasses := 0
	for _, name := range h.Order() {
		if class, ok := h.Class(name); ok && class.DynamicProperties.Len() > 0 {
			dynamicClasses++
		}
	}

	summaryLines := []string{
		"[ Hierarchy Summary ]",
		strings.Repeat("-", 21),
		fmt.Sprintf("Classes:      %d", h.Len()),
		fmt.Sprintf("Roots:        %d", len(roots)),
		fmt.Sprintf("Max Depth:    %d levels", hierarchyDepth(h, roots)),
		fmt.Sprintf("Dynamic:      %d classes", dynamicClasses),
	}

	fmt.Fprintln(outputWriter)
	printHeader("Class Hierarchy")
	fmt.Fprintln(outputWriter)

	printSideBySide(tree, summaryLines, 4)
}

// buildClassTree renders one subtree per root. Classes unreachable from any
// root sit on an extends cycle and are rendered as additional roots with a
// cycle marker.
func buildClassTree(h *resolver.Hierarchy, roots []string) string {
	var sb strings.Builder
	visited := make(map[string]bool)

	for _, root := range roots {
		visited[root] = true
		sb.WriteString(classLabel(h, root))
		sb.WriteString("\n")
		writeSubtree(&sb, h, root, "", visited)
	}

	for _, name := range h.Order() {
		if visited[name] {
			continue
		}
		visited[name] = true
		sb.WriteString(fmt.Sprintf("%s (cycle)\n", classLabel(h, name)))
		writeSubtree(&sb, h, name, "", visited)
	}

	return sb.String()
}

func writeSubtree(sb *strings.Builder, h *resolver.Hierarchy, name, prefix string, visited map[string]bool) {
	children := h.Children(name)
	for i, child := range children {
		connector := "├─"
		childPrefix := prefix + "│  "
		if i == len(children)-1 {
			connector = "└─"
			childPrefix = prefix + "   "
		}

		if visited[child] {
			fmt.Fprintf(sb, "%s%s %s (cycle)\n", prefix, connector, child)
			continue
		}
		visited[child] = true
		fmt.Fprintf(sb, "%s%s %s\n", prefix, connector, classLabel(h, child))
		writeSubtree(sb, h, child, childPrefix, visited)
	}
}

// classLabel annotates a class name with its unresolved parent and its
// remaining dynamic property count.
func classLabel(h *resolver.Hierarchy, name string) string {
	class, ok := h.Class(name)
	if !ok {
		return name
	}
	label := name
	if class.Extends != "" {
		if _, known := h.Class(class.Extends); !known {
			label = fmt.Sprintf("%s (extends %s, not scanned)", label, class.Extends)
		}
	}
	if n := class.DynamicProperties.Len(); n > 0 {
		label = fmt.Sprintf("%s [%d dynamic]", label, n)
	}
	return label
}

// hierarchyDepth returns the depth of the deepest extends chain, counting
// each visited class once so cyclic chains terminate.
func hierarchyDepth(h *resolver.Hierarchy, roots []string) int {
	visited := make(map[string]bool)
	maxDepth := 0
	for _, root := range roots {
		visited[root] = true
		if d := subtreeDepth(h, root, visited); d > maxDepth {
			maxDepth = d
		}
	}
	return maxDepth
}

func subtreeDepth(h *resolver.Hierarchy, name string, visited map[string]bool) int {
	deepest := 0
	for _, child := range h.Children(name) {
		if visited[child] {
			continue
		}
		visited[child] = true
		if d := subtreeDepth(h, child, visited); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

func printDynamicProperties(files []*types.PHPFile) {
	found := false
	for _, file := range files {
		for _, class := range file.ClassesWithDynamicProperties() {
			for el := class.DynamicProperties.Front(); el != nil; el = el.Next() {
				fmt.Fprintf(outputWriter, "  • %s::$%s (%s:%d)\n",
					displayClassName(class), el.Key, file.Path, el.Value.Line+1)
				found = true
			}
		}
	}
	if !found {
		fmt.Fprintln(outputWriter, "  (none)")
	}
}

// displayClassName renders the placeholder record, which collects top-level
// code, under a readable name.
func displayClassName(class *types.PHPClass) string {
	if class.Name == "" {
		return "(top-level)"
	}
	return class.Name
}

// printHeader prints a formatted header
func printHeader(format string, args ...interface{}) {
	title := fmt.Sprintf(format, args...)
	width := len(title) + 4
	fmt.Fprintln(outputWriter, strings.Repeat("=", width))
	fmt.Fprintf(outputWriter, "  %s\n", title)
	fmt.Fprintln(outputWriter, strings.Repeat("=", width))
}

// printSection prints a section header
func printSection(title string) {
	fmt.Fprintf(outputWriter, "[%s]\n", title)
	fmt.Fprintln(outputWriter, strings.Repeat("-", len(title)+2))
}

// printSideBySide prints two blocks of text side by side
// padding is the minimum spaces between the two columns
func printSideBySide(leftContent string, rightLines []string, padding int) {
	leftLines := strings.Split(strings.TrimRight(leftContent, "\n"), "\n")

	// Calculate max visual width of left column
	leftWidth := 0
	for _, line := range leftLines {
		if w := runewidth.StringWidth(line); w > leftWidth {
			leftWidth = w
		}
	}

	// Calculate height of each column
	maxHeight := len(leftLines)
	if len(rightLines) > maxHeight {
		maxHeight = len(rightLines)
	}

	// Print rows side by side
	for i := 0; i < maxHeight; i++ {
		leftPart := ""
		rightPart := ""

		if i < len(leftLines) {
			leftPart = leftLines[i]
		}
		if i < len(rightLines) {
			rightPart = rightLines[i]
		}

		fmt.Fprint(outputWriter, leftPart)

		spacesNeeded := leftWidth - runewidth.StringWidth(leftPart) + padding
		if spacesNeeded > 0 {
			fmt.Fprint(outputWriter, strings.Repeat(" ", spacesNeeded))
		}

		fmt.Fprintln(outputWriter, rightPart)
	}
}
