package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/mouse-blink/gorald/internal/adapter"
	"github.com/mouse-blink/gorald/internal/domain/rules"
	m "github.com/mouse-blink/gorald/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoBoolsSrc = `package p

func A(x bool) bool {
	return x == true
}

func B(y bool) bool {
	return y == false
}
`

func newTestDriver(handlers ...EventHandler) *RepairDriver {
	return NewRepairDriver(adapter.NewLocalSourceFSAdapter(), adapter.NewLocalGoFileAdapter(), NewNotifier(handlers...))
}

func boolRequest(root m.Path, files []m.Path, maxFixes int, violations ...m.Violation) RepairRequest {
	return RepairRequest{
		Rule:       &rules.BoolLiteralCompare{},
		InputDir:   root,
		Segment:    m.Segment{m.NewFileGroup(root, files)},
		Violations: m.NewViolationSet(violations...),
		Budget:     m.NewFixBudget(maxFixes),
		Repaired:   map[m.ViolationKey]struct{}{},
	}
}

func boolViolation(file m.Path, line, col int) m.Violation {
	return m.Violation{RuleKey: "bool-literal-compare", FilePath: file, StartLine: line, StartCol: col}
}

func TestRepairDriver_RepairsOnlyListedViolations(t *testing.T) {
	root := writeTree(t, map[string]string{"a.go": twoBoolsSrc})
	file := root.Join("a.go")

	rec := &recorder{}
	req := boolRequest(root, []m.Path{file}, 0, boolViolation(file, 8, 9))

	result := newTestDriver(rec).RepairUnit(context.Background(), req)
	require.NoError(t, result.Err)
	require.NotNil(t, result.Program)

	assert.Equal(t, 1, result.Fixes)
	assert.Equal(t, 1, req.Budget.Applied)
	assert.Contains(t, req.Repaired, boolViolation(file, 8, 9).Key())

	unit := result.Program.Units[0]
	assert.Equal(t, m.Path("a.go"), unit.Rel)
	assert.True(t, unit.Touched())
	assert.False(t, unit.StructureChanged())

	decls := unit.TouchedDecls()
	require.Len(t, decls, 1)
	assert.Equal(t, unit.File.Decls[1], decls[0])

	assert.Equal(t, []m.EventType{
		m.EventParseStart, m.EventParseEnd, m.EventRepairStart, m.EventRepairEnd, m.EventRepaired,
	}, rec.types())
	assert.Equal(t, 8, rec.ofType(m.EventRepaired)[0].Violation.StartLine)
}

func TestRepairDriver_WholeLineViolation(t *testing.T) {
	root := writeTree(t, map[string]string{"a.go": twoBoolsSrc})
	file := root.Join("a.go")

	result := newTestDriver().RepairUnit(context.Background(), boolRequest(root, []m.Path{file}, 0, boolViolation(file, 4, 0)))
	require.NoError(t, result.Err)
	assert.Equal(t, 1, result.Fixes)
}

func TestRepairDriver_Budget(t *testing.T) {
	root := writeTree(t, map[string]string{"a.go": twoBoolsSrc})
	file := root.Join("a.go")

	req := boolRequest(root, []m.Path{file}, 1, boolViolation(file, 4, 9), boolViolation(file, 8, 9))

	result := newTestDriver().RepairUnit(context.Background(), req)
	require.NoError(t, result.Err)

	assert.Equal(t, 1, result.Fixes)
	assert.True(t, req.Budget.Exhausted())
	assert.Contains(t, req.Repaired, boolViolation(file, 4, 9).Key())
	assert.NotContains(t, req.Repaired, boolViolation(file, 8, 9).Key())
}

func TestRepairDriver_SkipsAlreadyRepaired(t *testing.T) {
	root := writeTree(t, map[string]string{"a.go": twoBoolsSrc})
	file := root.Join("a.go")

	req := boolRequest(root, []m.Path{file}, 0, boolViolation(file, 4, 9))
	req.Repaired[boolViolation(file, 4, 9).Key()] = struct{}{}

	result := newTestDriver().RepairUnit(context.Background(), req)
	require.NoError(t, result.Err)
	assert.Zero(t, result.Fixes)
	assert.False(t, result.Program.Units[0].Touched())
}

func TestRepairDriver_SuppressedLine(t *testing.T) {
	root := writeTree(t, map[string]string{"a.go": `package p

func A(x bool) bool {
	//gorald:ignore bool-literal-compare
	return x == true
}
`})
	file := root.Join("a.go")

	result := newTestDriver().RepairUnit(context.Background(), boolRequest(root, []m.Path{file}, 0, boolViolation(file, 5, 9)))
	require.NoError(t, result.Err)
	assert.Zero(t, result.Fixes)
}

func TestRepairDriver_ParseFailure(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.go":      boolSrc,
		"broken.go": "package p\nfunc {\n",
	})
	files := []m.Path{root.Join("a.go"), root.Join("broken.go")}

	rec := &recorder{}
	req := boolRequest(root, files, 0, boolViolation(files[0], 4, 9))

	result := newTestDriver(rec).RepairUnit(context.Background(), req)
	require.Error(t, result.Err)
	assert.Nil(t, result.Program)

	var crash *SegmentCrash
	require.ErrorAs(t, result.Err, &crash)
	assert.Equal(t, "bool-literal-compare", crash.RuleKey)
	assert.Equal(t, files, crash.Files)
	assert.Contains(t, crash.Error(), "broken.go")

	assert.Zero(t, req.Budget.Applied)
	assert.Empty(t, req.Repaired)
	assert.Equal(t, []m.EventType{m.EventParseStart, m.EventParseEnd}, rec.types())
}

func TestRepairDriver_PanicRollsBack(t *testing.T) {
	root := writeTree(t, map[string]string{"a.go": boolSrc})
	file := root.Join("a.go")

	req := RepairRequest{
		Rule:       panicRule{},
		InputDir:   root,
		Segment:    m.Segment{m.NewFileGroup(root, []m.Path{file})},
		Violations: m.NewViolationSet(m.Violation{RuleKey: "panic-rule", FilePath: file, StartLine: 3}),
		Budget:     m.NewFixBudget(5),
		Repaired:   map[m.ViolationKey]struct{}{},
	}

	result := newTestDriver().RepairUnit(context.Background(), req)

	var crash *SegmentCrash
	require.ErrorAs(t, result.Err, &crash)
	assert.Contains(t, crash.Error(), "panic: boom")
	assert.Zero(t, req.Budget.Applied)
	assert.Empty(t, req.Repaired)
}

func TestRepairDriver_ResultsIsLazy(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a/a.go": boolSrc,
		"b/b.go": boolSrc,
		"c/c.go": boolSrc,
	})

	segments := []m.Segment{
		{m.NewFileGroup(root.Join("a"), []m.Path{root.Join("a", "a.go")})},
		{m.NewFileGroup(root.Join("b"), []m.Path{root.Join("b", "b.go")})},
		{m.NewFileGroup(root.Join("c"), []m.Path{root.Join("c", "c.go")})},
	}

	rec := &recorder{}
	driver := newTestDriver(rec)
	base := boolRequest(root, nil, 0)

	var seen []int

	for result := range driver.Results(context.Background(), base, segments) {
		seen = append(seen, result.Index)
		if result.Index == 1 {
			break
		}
	}

	assert.Equal(t, []int{0, 1}, seen)
	assert.Len(t, rec.ofType(m.EventParseStart), 2)

	// a fresh sequence starts over
	var again int
	for range driver.Results(context.Background(), base, segments) {
		again++
	}

	assert.Equal(t, 3, again)
}

func TestRepairDriver_CanceledContext(t *testing.T) {
	root := writeTree(t, map[string]string{"a.go": boolSrc})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := newTestDriver().RepairUnit(ctx, boolRequest(root, []m.Path{root.Join("a.go")}, 0))
	require.Error(t, result.Err)
	assert.True(t, errors.Is(result.Err, context.Canceled))
}
