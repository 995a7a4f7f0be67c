package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/deepakm/cbitset-go/lib/bitset"
	"github.com/deepakm/cbitset-go/lib/bitsetlist"
	"github.com/deepakm/cbitset-go/lib/word"
)

// TUI is a terminal inspector over a loaded bitset and/or bitset
// list, grounded on lookbusy1344-arm_emulator/debugger's tview panel
// layout and tcell key-capture style.
type TUI struct {
	App   *tview.Application
	Pages *tview.Pages

	WordTree   *tview.TreeView
	ListTable  *tview.Table
	StatusView *tview.TextView

	Bitset *bitset.Bitset
	List   *bitsetlist.List
}

// NewTUI builds the inspector around whichever of b/l is non-nil.
func NewTUI(b *bitset.Bitset, l *bitsetlist.List) *TUI {
	t := &TUI{
		App:    tview.NewApplication(),
		Bitset: b,
		List:   l,
	}
	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()
	return t
}

func (t *TUI) initializeViews() {
	root := tview.NewTreeNode("bitset").SetColor(tcell.ColorYellow)
	t.WordTree = tview.NewTreeView().SetRoot(root).SetCurrentNode(root)
	t.WordTree.SetBorder(true).SetTitle(" Word Stream ")
	if t.Bitset != nil {
		populateWordTree(root, t.Bitset)
	}

	t.ListTable = tview.NewTable().SetBorders(false).SetFixed(1, 0)
	t.ListTable.SetBorder(true).SetTitle(" Entries ")
	t.ListTable.SetCell(0, 0, tview.NewTableCell("Offset").SetSelectable(false))
	t.ListTable.SetCell(0, 1, tview.NewTableCell("Words").SetSelectable(false))
	t.ListTable.SetCell(0, 2, tview.NewTableCell("Checksum").SetSelectable(false))
	if t.List != nil {
		populateListTable(t.ListTable, t.List)
	}

	t.StatusView = tview.NewTextView().SetDynamicColors(true)
	t.StatusView.SetBorder(true).SetTitle(" Status ")
	t.StatusView.SetText("Ctrl+C quit  Tab switch panel")
}

// populateWordTree renders each encoded word as a tree node: fill
// words annotated with length/position, literal words with their
// 31-bit payload in hex.
func populateWordTree(root *tview.TreeNode, b *bitset.Bitset) {
	for i, w := range b.Words() {
		var label string
		if word.IsFill(w) {
			if word.HasAbsorbedBit(w) {
				label = fmt.Sprintf("[%d] fill len=%d pos=%d", i, word.FillLength(w), word.AbsorbedBitIndex(w))
			} else {
				label = fmt.Sprintf("[%d] fill len=%d", i, word.FillLength(w))
			}
		} else {
			label = fmt.Sprintf("[%d] literal payload=%#x", i, word.Payload(w))
		}
		root.AddChild(tview.NewTreeNode(label))
	}
}

// populateListTable fills one row per entry using a full iterator
// walk over the list.
func populateListTable(table *tview.Table, l *bitsetlist.List) {
	it := bitsetlist.NewIterator(l, bitsetlist.NegInf, bitsetlist.PosInf)
	offsets, err := it.Offsets()
	if err != nil {
		return
	}
	bitsets, err := it.Bitsets()
	if err != nil {
		return
	}
	for i := range offsets {
		row := i + 1
		table.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%d", offsets[i])))
		table.SetCell(row, 1, tview.NewTableCell(fmt.Sprintf("%d", len(bitsets[i].Words()))))
		table.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf("%x", bitsets[i].Checksum())))
	}
}

func (t *TUI) buildLayout() {
	top := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.WordTree, 0, 1, true).
		AddItem(t.ListTable, 0, 1, false)

	main := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(top, 0, 5, true).
		AddItem(t.StatusView, 3, 0, false)

	t.Pages = tview.NewPages().AddPage("main", main, true, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case tcell.KeyTab:
			if t.App.GetFocus() == t.WordTree {
				t.App.SetFocus(t.ListTable)
			} else {
				t.App.SetFocus(t.WordTree)
			}
			return nil
		}
		return event
	})
}

// Run starts the application's event loop.
func (t *TUI) Run() error {
	return t.App.SetRoot(t.Pages, true).SetFocus(t.WordTree).Run()
}
