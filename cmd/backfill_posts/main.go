package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/wellnest/wellnest-api/config"
)

// backfill_posts resolves legacy blog rows, which recorded their author only
// by display name, to an account id. Names matching zero or more than one
// practitioner account are left untouched and reported for manual cleanup.
// Safe to re-run; it only looks at rows with no author_id.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	res, err := db.Exec(`
		UPDATE posts p
		SET author_id = a.id
		FROM accounts a
		WHERE p.author_id IS NULL
		  AND a.role = 'practitioner'
		  AND a.name = p.legacy_author_name
		  AND (SELECT count(*) FROM accounts a2
		       WHERE a2.role = 'practitioner' AND a2.name = p.legacy_author_name) = 1
	`)
	if err != nil {
		log.Fatalf("backfill failed: %v", err)
	}
	n, _ := res.RowsAffected()
	fmt.Printf("backfilled %d posts\n", n)

	rows, err := db.Query(`
		SELECT id, legacy_author_name FROM posts WHERE author_id IS NULL
	`)
	if err != nil {
		log.Fatalf("failed to list unresolved posts: %v", err)
	}
	defer rows.Close()

	unresolved := 0
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			log.Fatalf("scan failed: %v", err)
		}
		fmt.Printf("unresolved: post=%s legacy_author_name=%q\n", id, name)
		unresolved++
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("row iteration failed: %v", err)
	}
	if unresolved == 0 {
		fmt.Println("all posts have an author id")
	} else {
		fmt.Printf("%d posts need manual author resolution\n", unresolved)
	}
}
