package materialize

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"sheetboard/domain/board"
	"sheetboard/domain/briefing"
	"sheetboard/domain/core"
	"sheetboard/domain/sheet"
	"sheetboard/internal"
	"sheetboard/ports"
)

// MaxDescriptionRunes caps the board description taken from the briefing summary
const MaxDescriptionRunes = 500

// Input is a confirmed briefing plus the full table it describes
type Input struct {
	Briefing    *briefing.Briefing
	Headers     []string
	Rows        []sheet.Row
	BoardName   string
	WorkspaceID core.WorkspaceID
	OwnerID     core.UserID
}

// Materializer writes a board and its children through the repository.
// Only the board insert is fatal; every other failed insert is skipped and recorded.
type Materializer struct {
	repo   ports.BoardRepository
	logger *internal.Logger
}

// NewMaterializer creates a materializer; a nil logger uses the default one
func NewMaterializer(repo ports.BoardRepository, logger *internal.Logger) *Materializer {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Materializer{repo: repo, logger: logger.With("Materializer")}
}

// Materialize creates board, columns, groups, items and values in that order.
// Writes are never undone; running it twice creates two independent boards.
func (m *Materializer) Materialize(ctx context.Context, in Input) (*board.MaterializationReport, error) {
	if in.Briefing == nil {
		return nil, fmt.Errorf("%w: briefing is required", core.ErrInvalidBriefing)
	}
	if err := in.Briefing.Validate(in.Headers); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidBriefing, err)
	}
	if in.OwnerID == "" {
		in.OwnerID = core.DefaultUserID
	}

	b := &board.Board{
		ID:          core.BoardID(core.NewID()),
		WorkspaceID: in.WorkspaceID,
		OwnerID:     in.OwnerID,
		Name:        boardName(in.BoardName, in.Briefing.DataType),
		Description: truncateRunes(in.Briefing.Summary, MaxDescriptionRunes),
		CreatedAt:   core.Now(),
	}
	if err := m.repo.CreateBoard(ctx, b); err != nil {
		m.logger.Error("board %q could not be created: %v", b.Name, err)
		return nil, core.NewPersistenceError("board", err)
	}
	m.logger.Info("created board %s (%s) with %d rows to import", b.ID, b.Name, len(in.Rows))

	report := &board.MaterializationReport{
		BoardID:   b.ID,
		BoardName: b.Name,
		ColumnIDs: []core.ColumnID{},
		GroupIDs:  []core.GroupID{},
		ItemIDs:   []core.ItemID{},
		Skipped:   []board.SkippedEntity{},
	}

	buckets, keyIdx := Partition(in.Headers, in.Rows, in.Briefing.Grouping)
	columnIDs := m.createColumns(ctx, b.ID, in.Briefing.SuggestedColumns, keyIdx, report)
	types := in.Briefing.SuggestedColumns
	nameIdx := itemNameIndex(len(in.Headers), keyIdx)

	for pos, bucket := range buckets {
		group := &board.Group{
			ID:       core.GroupID(core.NewID()),
			BoardID:  b.ID,
			Name:     bucket.Name,
			Position: pos,
		}
		if err := m.repo.CreateGroup(ctx, group); err != nil {
			m.logger.Warn("group %q skipped with its %d rows: %v", bucket.Name, len(bucket.Rows), err)
			report.Skip(board.KindGroup, bucket.Name, err)
			report.SkippedRows += len(bucket.Rows)
			continue
		}
		report.GroupIDs = append(report.GroupIDs, group.ID)

		for itemPos, row := range bucket.Rows {
			item := &board.Item{
				ID:       core.ItemID(core.NewID()),
				GroupID:  group.ID,
				Name:     itemName(row, nameIdx, itemPos),
				Position: itemPos,
			}
			if err := m.repo.CreateItem(ctx, item); err != nil {
				m.logger.Warn("item %q in group %q skipped: %v", item.Name, group.Name, err)
				report.Skip(board.KindItem, item.Name, err)
				report.SkippedRows++
				continue
			}
			report.ItemIDs = append(report.ItemIDs, item.ID)

			for idx, columnID := range columnIDs {
				if columnID == "" || idx == keyIdx {
					continue
				}
				cell := row.At(idx)
				if cell.IsBlank() {
					continue
				}
				value := &board.ColumnValue{
					ItemID:   item.ID,
					ColumnID: columnID,
					Value:    CoerceValue(types[idx].Type, cell),
				}
				if err := m.repo.CreateColumnValue(ctx, value); err != nil {
					m.logger.Warn("value of %q for item %q skipped: %v", in.Headers[idx], item.Name, err)
					report.Skip(board.KindColumnValue, fmt.Sprintf("%s/%s", item.Name, in.Headers[idx]), err)
					continue
				}
				report.ValueCount++
			}
		}
	}

	m.logger.Info("board %s done: %d columns, %d groups, %d items, %d values, %d skipped",
		b.ID, len(report.ColumnIDs), len(report.GroupIDs), len(report.ItemIDs), report.ValueCount, len(report.Skipped))
	return report, nil
}

// createColumns inserts one column per suggested column except the grouping key.
// The returned slice is indexed like the headers; failed or skipped entries are empty.
func (m *Materializer) createColumns(ctx context.Context, boardID core.BoardID, suggested []briefing.SuggestedColumn, keyIdx int, report *board.MaterializationReport) []core.ColumnID {
	ids := make([]core.ColumnID, len(suggested))
	for idx, sc := range suggested {
		if idx == keyIdx {
			continue
		}
		position := idx
		if keyIdx >= 0 && idx > keyIdx {
			position--
		}
		col := &board.Column{
			ID:       core.ColumnID(core.NewID()),
			BoardID:  boardID,
			Name:     sc.Name,
			Type:     sc.Type,
			Position: position,
		}
		if err := m.repo.CreateColumn(ctx, col); err != nil {
			m.logger.Warn("column %q skipped: %v", sc.Name, err)
			report.Skip(board.KindColumn, sc.Name, err)
			continue
		}
		ids[idx] = col.ID
		report.ColumnIDs = append(report.ColumnIDs, col.ID)
	}
	return ids
}

// itemNameIndex is the first header that is not the grouping key, or -1.
// A key in column 0 names items from the column right after it; any later key leaves column 0 as the name.
func itemNameIndex(headerCount, keyIdx int) int {
	for idx := 0; idx < headerCount; idx++ {
		if idx != keyIdx {
			return idx
		}
	}
	return -1
}

func itemName(row sheet.Row, nameIdx, pos int) string {
	if nameIdx >= 0 {
		if name := row.At(nameIdx).Trimmed(); name != "" {
			return name
		}
	}
	return fmt.Sprintf("Item %d", pos+1)
}

func boardName(requested, dataType string) string {
	if name := strings.TrimSpace(requested); name != "" {
		return name
	}
	dataType = strings.TrimSpace(dataType)
	if dataType == "" {
		dataType = "general"
	}
	r, size := utf8.DecodeRuneInString(dataType)
	return string(unicode.ToUpper(r)) + dataType[size:] + " board"
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
