package db

import (
	"context"
	"database/sql"
	"sync"

	"log"
	"time"

	"github.com/google/uuid"
	"github.com/trustnet/trustnet/domain"
	"modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// DB is the database struct.
type DB struct {
	db *sql.DB
}

var (
	dbInstance *DB
	dbOnce     sync.Once
)

const (
	// Session key-value storage, one row per persisted SessionState field.
	// Scoped so that an SSH-served client keeps its own session.
	sqlCreateSessionTable = `CREATE TABLE IF NOT EXISTS session(
                        scope varchar(100) NOT NULL,
                        key varchar(100) NOT NULL,
                        value text NOT NULL,
                        PRIMARY KEY(scope, key)
                        )`
	sqlUpsertSessionValue = `INSERT INTO session(scope, key, value) VALUES (?, ?, ?)
                        ON CONFLICT(scope, key) DO UPDATE SET value = excluded.value`
	sqlSelectSessionValue = `SELECT value FROM session WHERE scope = ? AND key = ?`
	sqlDeleteSessionScope = `DELETE FROM session WHERE scope = ?`

	// Registered users for the bundled stub auth backend
	sqlCreateUsersTable = `CREATE TABLE IF NOT EXISTS users(
                        id uuid NOT NULL PRIMARY KEY,
                        name varchar(100) NOT NULL,
                        email varchar(200) UNIQUE NOT NULL,
                        password_hash varchar(200) NOT NULL,
                        created_at timestamp default current_timestamp
                        )`
	sqlInsertUser        = `INSERT INTO users(id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`
	sqlSelectUserByEmail = `SELECT id, name, email, password_hash FROM users WHERE email = ?`
)

// StubUser is a row of the stub backend's user table.
type StubUser struct {
	Id           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
}

// WriteSessionValue stores one JSON-encoded session field.
func (db *DB) WriteSessionValue(scope string, key string, value string) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlUpsertSessionValue, scope, key, value)
		return err
	})
}

// ReadSessionValue reads one session field; a missing key returns a nil value.
func (db *DB) ReadSessionValue(scope string, key string) (error, *string) {
	row := db.db.QueryRow(sqlSelectSessionValue, scope, key)
	var value string
	err := row.Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return err, nil
	}
	return nil, &value
}

// ClearSession removes every persisted key of the given scope.
func (db *DB) ClearSession(scope string) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlDeleteSessionScope, scope)
		return err
	})
}

func (db *DB) CreateUser(name string, email string, passwordHash string) (error, *StubUser) {
	user := &StubUser{
		Id:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertUser, user.Id, user.Name, user.Email, user.PasswordHash, time.Now())
		return err
	})
	if err != nil {
		return err, nil
	}
	return nil, user
}

func (db *DB) ReadUserByEmail(email string) (error, *StubUser) {
	row := db.db.QueryRow(sqlSelectUserByEmail, email)
	var user StubUser
	err := row.Scan(&user.Id, &user.Name, &user.Email, &user.PasswordHash)
	if err == sql.ErrNoRows {
		return err, nil
	}
	return err, &user
}

func GetDB() *DB {
	dbOnce.Do(func() {
		// Open database connection
		db, err := sql.Open("sqlite", "trustnet.db")
		if err != nil {
			panic(err)
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(time.Hour)

		// Try to enable WAL mode
		var journalMode string
		err = db.QueryRow("PRAGMA journal_mode=WAL").Scan(&journalMode)
		if err != nil {
			log.Printf("Warning: Failed to enable WAL mode: %v", err)
		} else {
			log.Printf("Database journal mode: %s", journalMode)
		}

		db.Exec("PRAGMA synchronous = NORMAL")
		db.Exec("PRAGMA temp_store = MEMORY")
		db.Exec("PRAGMA busy_timeout = 5000")
		db.Exec("PRAGMA foreign_keys = ON")

		dbInstance = &DB{db: db}

		// Run initial schema setup
		err2 := dbInstance.CreateDB()
		if err2 != nil {
			panic(err2)
		}

		// Sample content for the presentational views
		if err := dbInstance.SeedSampleData(); err != nil {
			log.Printf("Warning: could not seed sample data: %v", err)
		}
	})

	return dbInstance
}

// CreateDB creates the database.
func (db *DB) CreateDB() error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		for _, stmt := range []string{
			sqlCreateSessionTable,
			sqlCreateUsersTable,
			sqlCreatePostsTable,
			sqlCreateCommunitiesTable,
			sqlCreateConversationsTable,
			sqlCreateMessagesTable,
			sqlCreateThreadsTable,
			sqlCreateNotificationsTable,
			sqlCreateTrendingTable,
			sqlCreateParticipantsTable,
		} {
			if _, err := tx.Exec(stmt); err != nil {
				return err
			}
		}
		return nil
	})
}

// wrapTransaction runs the given function within a transaction.
func (db *DB) wrapTransaction(f func(tx *sql.Tx) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("error starting transaction: %s", err)
		return err
	}
	for {
		err = f(tx)
		if err != nil {
			serr, ok := err.(*sqlite.Error)
			if ok && serr.Code() == sqlitelib.SQLITE_BUSY {
				continue
			}
			log.Printf("error in transaction: %s", err)
			return err
		}
		err = tx.Commit()
		if err != nil {
			log.Printf("error committing transaction: %s", err)
			return err
		}
		break
	}
	return nil
}

// scanPosts is shared by the post queries.
func scanPosts(rows *sql.Rows) (error, *[]domain.Post) {
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(&post.Id, &post.Author, &post.Username, &post.TrustScore,
			&post.Content, &post.CreatedAt, &post.Likes, &post.Comments, &post.Shares,
			&post.ReasonType, &post.ReasonDetail); err != nil {
			return err, &posts
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return err, &posts
	}
	return nil, &posts
}
