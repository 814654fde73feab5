package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// BackupListEntry is one row of the enriched backup-status listing: the
// backup_statuses columns combined with the display names of the four stage
// checkers and the names of the producers mapped to the item.
type BackupListEntry struct {
	ID                      uint       `json:"id"`
	EventName               *string    `json:"event_name"`
	DisplayedDate           *time.Time `json:"displayed_date"`
	Name                    string     `json:"name"`
	Description             *string    `json:"description"`
	Cam                     *bool      `json:"cam"`
	CamChecker              *uint      `json:"cam_checker"`
	CamCheckerName          *string    `json:"cam_checker_name"`
	Master                  *bool      `json:"master"`
	MasterChecker           *uint      `json:"master_checker"`
	MasterCheckerName       *string    `json:"master_checker_name"`
	Clean                   *bool      `json:"clean"`
	CleanChecker            *uint      `json:"clean_checker"`
	CleanCheckerName        *string    `json:"clean_checker_name"`
	FinalProduct            *bool      `json:"final_product"`
	FinalProductChecker     *uint      `json:"final_product_checker"`
	FinalProductCheckerName *string    `json:"final_product_checker_name"`
	CreatedAt               time.Time  `json:"created_at"`
	Producers               []string   `json:"producers"`
}

// ListBackupStatuses returns the enriched backup-status rows. Soft-deleted
// rows are excluded, eventName (when non-empty) is matched as a substring,
// and rows are ordered by displayed_date descending with NULL dates last.
// Each checker name comes from its own outer join of users, so an unmatched
// checker yields a null name without dropping the row. Producer names are
// resolved separately per row by the caller.
func ListBackupStatuses(db *sql.DB, skip, limit int, eventName string) ([]BackupListEntry, error) {
	queryBuilder := psql.Select(
		"bs.id", "bs.event_name", "bs.displayed_date", "bs.name", "bs.description",
		"bs.cam", "bs.cam_checker", "cam_u.name",
		"bs.master", "bs.master_checker", "master_u.name",
		"bs.clean", "bs.clean_checker", "clean_u.name",
		"bs.final_product", "bs.final_product_checker", "final_u.name",
		"bs.created_at").
		From("backup_statuses bs").
		LeftJoin("users cam_u ON bs.cam_checker = cam_u.id").
		LeftJoin("users master_u ON bs.master_checker = master_u.id").
		LeftJoin("users clean_u ON bs.clean_checker = clean_u.id").
		LeftJoin("users final_u ON bs.final_product_checker = final_u.id").
		Where(sq.Eq{"bs.deleted": false})

	if eventName != "" {
		queryBuilder = queryBuilder.Where(sq.Like{"bs.event_name": "%" + eventName + "%"})
	}

	queryBuilder = queryBuilder.
		OrderBy("bs.displayed_date IS NULL", "bs.displayed_date DESC").
		Offset(uint64(skip)).
		Limit(uint64(limit))

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for ListBackupStatuses: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute ListBackupStatuses query: %w", err)
	}
	defer rows.Close()

	entries := []BackupListEntry{}
	for rows.Next() {
		var e BackupListEntry
		err := rows.Scan(&e.ID, &e.EventName, &e.DisplayedDate, &e.Name, &e.Description,
			&e.Cam, &e.CamChecker, &e.CamCheckerName,
			&e.Master, &e.MasterChecker, &e.MasterCheckerName,
			&e.Clean, &e.CleanChecker, &e.CleanCheckerName,
			&e.FinalProduct, &e.FinalProductChecker, &e.FinalProductCheckerName,
			&e.CreatedAt)
		if err != nil {
			log.Printf("Error scanning backup status row: %v", err)
			continue
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return entries, fmt.Errorf("error iterating backup status rows: %w", err)
	}

	return entries, nil
}

// ListProducerNames returns the display names of the producers mapped to a
// backup item, in mapping insertion order (ascending mapping id).
func ListProducerNames(db *sql.DB, backupStatusID uint) ([]string, error) {
	queryBuilder := psql.Select("u.name").
		From("user_backup_mappings m").
		Join("users u ON m.user_id = u.id").
		Where(sq.Eq{"m.backup_status_id": backupStatusID}).
		OrderBy("m.id ASC")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for ListProducerNames: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute ListProducerNames query for backup status %d: %w", backupStatusID, err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			log.Printf("Error scanning producer name row: %v", err)
			continue
		}
		names = append(names, name)
	}

	if err = rows.Err(); err != nil {
		return names, fmt.Errorf("error iterating producer name rows: %w", err)
	}

	return names, nil
}
