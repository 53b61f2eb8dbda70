package manifest

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

var schema = []string{
	"CREATE TABLE IF NOT EXISTS atlas (id INTEGER PRIMARY KEY NOT NULL, image TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL)",
	"CREATE TABLE IF NOT EXISTS sprite (id INTEGER PRIMARY KEY NOT NULL, atlas_id INTEGER NOT NULL, name TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, rotated INTEGER NOT NULL, FOREIGN KEY(atlas_id) REFERENCES atlas(id))",
	"CREATE TABLE IF NOT EXISTS alias (sprite_id INTEGER NOT NULL, position INTEGER NOT NULL, name TEXT NOT NULL, FOREIGN KEY(sprite_id) REFERENCES sprite(id))",
	"CREATE TABLE IF NOT EXISTS rect (sprite_id INTEGER NOT NULL, position INTEGER NOT NULL, x INTEGER NOT NULL, y INTEGER NOT NULL, w INTEGER NOT NULL, h INTEGER NOT NULL, canvas_x INTEGER NOT NULL, canvas_y INTEGER NOT NULL, canvas_w INTEGER NOT NULL, canvas_h INTEGER NOT NULL, FOREIGN KEY(sprite_id) REFERENCES sprite(id))",
}

// WriteDB stores m in the SQLite database file, creating it if necessary.
// Any atlas already stored for the same image is replaced.
func WriteDB(file string, m *Manifest) error {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return err
	}
	defer db.Close()

	for _, stmt := range schema {
		if _, err = db.Exec(stmt); err != nil {
			return err
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteAtlas(tx, m.Image); err != nil {
		return err
	}

	result, err := tx.Exec("INSERT INTO atlas (image, width, height) VALUES (?, ?, ?)", m.Image, m.Width, m.Height)
	if err != nil {
		return err
	}
	atlas, err := result.LastInsertId()
	if err != nil {
		return err
	}

	for _, s := range m.Sprites {
		if err := addSprite(tx, atlas, s); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func deleteAtlas(tx *sql.Tx, image string) error {
	for _, stmt := range []string{
		"DELETE FROM rect WHERE sprite_id IN (SELECT s.id FROM sprite AS s JOIN atlas AS a ON s.atlas_id = a.id WHERE a.image = ?)",
		"DELETE FROM alias WHERE sprite_id IN (SELECT s.id FROM sprite AS s JOIN atlas AS a ON s.atlas_id = a.id WHERE a.image = ?)",
		"DELETE FROM sprite WHERE atlas_id IN (SELECT id FROM atlas WHERE image = ?)",
		"DELETE FROM atlas WHERE image = ?",
	} {
		if _, err := tx.Exec(stmt, image); err != nil {
			return err
		}
	}
	return nil
}

func addSprite(tx *sql.Tx, atlas int64, s Sprite) error {
	result, err := tx.Exec("INSERT INTO sprite (atlas_id, name, width, height, rotated) VALUES (?, ?, ?, ?, ?)", atlas, s.Name, s.Width, s.Height, s.Rotated)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	for i, a := range s.Aliases {
		if _, err := tx.Exec("INSERT INTO alias (sprite_id, position, name) VALUES (?, ?, ?)", id, i, a); err != nil {
			return err
		}
	}

	if len(s.Rects) != len(s.CanvasRects) {
		return fmt.Errorf("manifest: sprite \"%s\" has %d source and %d canvas rectangles", s.Name, len(s.Rects), len(s.CanvasRects))
	}
	for i, r := range s.Rects {
		c := s.CanvasRects[i]
		if _, err := tx.Exec("INSERT INTO rect (sprite_id, position, x, y, w, h, canvas_x, canvas_y, canvas_w, canvas_h) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", id, i, r.X, r.Y, r.W, r.H, c.X, c.Y, c.W, c.H); err != nil {
			return err
		}
	}

	return nil
}

// ReadDB loads the atlas stored for image from the SQLite database file.
func ReadDB(file, image string) (*Manifest, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	defer db.Close()

	m := &Manifest{Image: image}

	var atlas int64
	switch err := db.QueryRow("SELECT id, width, height FROM atlas WHERE image = ?", image).Scan(&atlas, &m.Width, &m.Height); err {
	case sql.ErrNoRows:
		return nil, fmt.Errorf("manifest: no atlas for \"%s\"", image)
	case nil:
	default:
		return nil, err
	}

	rows, err := db.Query("SELECT id, name, width, height, rotated FROM sprite WHERE atlas_id = ? ORDER BY id", atlas)
	if err != nil {
		return nil, err
	}
	var ids []int64
	for rows.Next() {
		var id int64
		var s Sprite
		if err := rows.Scan(&id, &s.Name, &s.Width, &s.Height, &s.Rotated); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
		m.Sprites = append(m.Sprites, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i, id := range ids {
		if err := readSprite(db, id, &m.Sprites[i]); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func readSprite(db *sql.DB, id int64, s *Sprite) error {
	rows, err := db.Query("SELECT name FROM alias WHERE sprite_id = ? ORDER BY position", id)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return err
		}
		s.Aliases = append(s.Aliases, a)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rects, err := db.Query("SELECT x, y, w, h, canvas_x, canvas_y, canvas_w, canvas_h FROM rect WHERE sprite_id = ? ORDER BY position", id)
	if err != nil {
		return err
	}
	defer rects.Close()
	for rects.Next() {
		var r, c Rect
		if err := rects.Scan(&r.X, &r.Y, &r.W, &r.H, &c.X, &c.Y, &c.W, &c.H); err != nil {
			return err
		}
		s.Rects = append(s.Rects, r)
		s.CanvasRects = append(s.CanvasRects, c)
	}
	return rects.Err()
}
