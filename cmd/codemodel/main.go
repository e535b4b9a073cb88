// Command codemodel is a small interactive demonstration of the cm
// package: it builds a sample code model, prints its namespace/record
// tree with computed layouts, and can diff the textual dump of a record
// before and after a forward-reference replacement.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/oxhq/codemodel/cm"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "codemodel",
		Short: "codemodel demo",
		Long:  "Interactive demonstration of the in-memory code model: build a sample graph, print its layout, diff a replace_type.",
	}

	var dsn string
	var debug bool

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build a sample model and print its tree",
		Run: func(cmd *cobra.Command, args []string) {
			m, err := buildSample()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			printTree(m)
		},
	}

	replaceDiffCmd := &cobra.Command{
		Use:   "replace-diff",
		Short: "Build a sample model with a forward reference, then show the diff after it resolves",
		Run: func(cmd *cobra.Command, args []string) {
			if err := runReplaceDiff(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}

	persistCmd := &cobra.Command{
		Use:   "persist",
		Short: "Build a sample model, register object addresses, and flush them to a SQLite/Turso store",
		Run: func(cmd *cobra.Command, args []string) {
			if dsn == "" {
				fmt.Fprintln(os.Stderr, "Error: --dsn is required")
				os.Exit(1)
			}
			if err := runPersist(dsn, debug); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}
	persistCmd.Flags().StringVar(&dsn, "dsn", "", "SQLite file path or libsql:// / https:// Turso URL")
	persistCmd.Flags().BoolVar(&debug, "debug", false, "enable verbose GORM logging")

	rootCmd.AddCommand(buildCmd, replaceDiffCmd, persistCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// buildSample constructs a small graph: a "shapes" namespace with a
// Point struct, a Shape class holding a fixed array of Points, and a
// Box<T> template instantiated over Point.
func buildSample() (*cm.CodeModel, error) {
	m := cm.New()
	shapes := m.Root().GetOrCreateNamespace("shapes")

	point := shapes.CreateRecord(cm.RecordStruct, "Point")
	if _, err := point.AddField("x", cm.Unqualified(m.Int()), cm.AccessPublic, 0); err != nil {
		return nil, err
	}
	if _, err := point.AddField("y", cm.Unqualified(m.Int()), cm.AccessPublic, 0); err != nil {
		return nil, err
	}

	pointArray, err := m.GetOrCreateArray(point, 4)
	if err != nil {
		return nil, err
	}
	shape := shapes.CreateRecord(cm.RecordClass, "Shape")
	if _, err := shape.AddField("vertices", cm.Unqualified(pointArray), cm.AccessPrivate, 0); err != nil {
		return nil, err
	}
	if _, err := shape.AddField("flags", cm.Unqualified(m.Bool()), cm.AccessPrivate, 1); err != nil {
		return nil, err
	}

	box := shapes.CreateTemplate("Box")
	box.AddTypeParam("T", 0)
	pointType := cm.Unqualified(point)
	sub, err := box.FindOrCreateSubstitution(cm.SubstInstantiation, "Box", []*cm.TemplateArg{cm.NewTypeArg(pointType)})
	if err != nil {
		return nil, err
	}
	if _, err := sub.AddField("value", pointType, cm.AccessPublic, 0); err != nil {
		return nil, err
	}

	if _, err := m.LayoutOf(shape); err != nil {
		return nil, err
	}
	return m, nil
}

func printTree(m *cm.CodeModel) {
	for _, ns := range m.Root().Namespaces() {
		printNamespace(m, ns, 0)
	}
}

func printNamespace(m *cm.CodeModel, ns *cm.Namespace, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%snamespace %s\n", indent, ns.Name())
	for _, r := range ns.Records() {
		printRecord(m, r, depth+1)
	}
	for _, t := range ns.Templates() {
		fmt.Printf("%s  template %s\n", indent, t.Name())
		for _, sub := range t.Instantiations() {
			printRecord(m, &sub.Record, depth+2)
		}
	}
	for _, child := range ns.Namespaces() {
		printNamespace(m, child, depth+1)
	}
}

func printRecord(m *cm.CodeModel, r *cm.Record, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%s%s %s\n", indent, r.RecordKind().String(), r.Name())
	layout, err := m.LayoutOf(r)
	if err != nil {
		fmt.Printf("%s  (layout unavailable: %v)\n", indent, err)
		return
	}
	for _, fl := range layout.Fields {
		fmt.Printf("%s  %s @ bit %d (width %d)\n", indent, fl.Field.Name(), fl.BitOffset, fl.BitWidth)
	}
	fmt.Printf("%s  size: %d bytes\n", indent, layout.SizeBytes)
}

// runReplaceDiff builds a model with a placeholder type standing in for
// a forward-declared record, dumps the owning record's textual layout,
// resolves the placeholder, dumps it again, and prints a unified diff
// of the two snapshots.
func runReplaceDiff() error {
	m := cm.New()
	shapes := m.Root().GetOrCreateNamespace("shapes")
	b := cm.NewBuilder(m)

	node := shapes.CreateRecord(cm.RecordStruct, "Node")
	placeholder := b.TypeRef("Node")
	nextPtr, err := m.GetOrCreatePointer(cm.Unqualified(placeholder))
	if err != nil {
		return err
	}
	if _, err := node.AddField("next", cm.Unqualified(nextPtr), cm.AccessPublic, 0); err != nil {
		return err
	}
	if _, err := node.AddField("value", cm.Unqualified(m.Int()), cm.AccessPublic, 0); err != nil {
		return err
	}

	before := dumpRecord(node)

	b.SetType("Node", node)
	if err := b.Build(); err != nil {
		return err
	}

	after := dumpRecord(node)

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "before resolve",
		ToFile:   "after resolve",
		Context:  3,
	}
	text, diffErr := difflib.GetUnifiedDiffString(diff)
	if diffErr != nil {
		fmt.Printf("--- before\n+++ after\n%s\n%s\n", before, after)
		return nil
	}
	if text == "" {
		fmt.Println("no visible change")
		return nil
	}
	fmt.Print(text)
	return nil
}

func dumpRecord(r *cm.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "record %s\n", r.Name())
	for _, f := range r.Fields() {
		q := f.Type()
		kind := "?"
		if q.Type != nil {
			kind = q.Type.Kind().String()
		}
		fmt.Fprintf(&b, "  %s: %s\n", f.Name(), kind)
	}
	return b.String()
}

// runPersist builds a sample model, assigns each top-level record a
// fake address range, and flushes the result to a debug-info store.
func runPersist(dsn string, debug bool) error {
	m, err := buildSample()
	if err != nil {
		return err
	}

	addr := uint64(0x1000)
	for _, r := range m.Root().GetOrCreateNamespace("shapes").Records() {
		size, sizeErr := m.SizeOf(r)
		if sizeErr != nil {
			size = 0
		}
		if err := m.DebugInfo().AddObject(r, addr, size); err != nil {
			return fmt.Errorf("register %s: %w", r.Name(), err)
		}
		m.DebugInfo().AddType(r, size)
		addr += size + 16
	}

	store, err := cm.OpenDebugInfoStore(dsn, debug)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Flush(m.DebugInfo()); err != nil {
		return err
	}
	fmt.Println("persisted debug info to", dsn)
	return nil
}
