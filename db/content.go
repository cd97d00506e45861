package db

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/trustnet/trustnet/domain"
)

const (
	sqlCreatePostsTable = `CREATE TABLE IF NOT EXISTS posts(
                        id uuid NOT NULL PRIMARY KEY,
                        author varchar(100) NOT NULL,
                        username varchar(100) NOT NULL,
                        trust_score int NOT NULL,
                        content varchar(1000) NOT NULL,
                        created_at timestamp default current_timestamp,
                        likes int default 0,
                        comments int default 0,
                        shares int default 0,
                        reason_type varchar(20) NOT NULL,
                        reason_detail varchar(200) NOT NULL
                        )`
	sqlInsertPost = `INSERT INTO posts(id, author, username, trust_score, content, created_at, likes, comments, shares, reason_type, reason_detail)
                        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	sqlSelectAllPosts = `SELECT id, author, username, trust_score, content, created_at, likes, comments, shares, reason_type, reason_detail
                        FROM posts ORDER BY created_at DESC`
	sqlSelectPostsByQuery = `SELECT id, author, username, trust_score, content, created_at, likes, comments, shares, reason_type, reason_detail
                        FROM posts WHERE content LIKE ? OR author LIKE ? OR username LIKE ? ORDER BY created_at DESC`
	sqlUpdatePostLikes = `UPDATE posts SET likes = likes + ? WHERE id = ?`
	sqlCountPosts      = `SELECT COUNT(*) FROM posts`

	sqlCreateCommunitiesTable = `CREATE TABLE IF NOT EXISTS communities(
                        id uuid NOT NULL PRIMARY KEY,
                        name varchar(100) UNIQUE NOT NULL,
                        description varchar(500),
                        members int default 0,
                        posts int default 0,
                        category varchar(50),
                        moderation_level varchar(20) default 'moderate',
                        joined int default 0,
                        verified int default 0,
                        private int default 0
                        )`
	sqlInsertCommunity = `INSERT INTO communities(id, name, description, members, posts, category, moderation_level, joined, verified, private)
                        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	sqlSelectCommunities = `SELECT id, name, description, members, posts, category, moderation_level, joined, verified, private
                        FROM communities ORDER BY members DESC`
	sqlUpdateCommunityJoined = `UPDATE communities SET joined = ? WHERE id = ?`

	sqlCreateConversationsTable = `CREATE TABLE IF NOT EXISTS conversations(
                        id uuid NOT NULL PRIMARY KEY,
                        participant varchar(100) NOT NULL,
                        username varchar(100) NOT NULL,
                        online int default 0,
                        last_message varchar(500),
                        updated_at timestamp default current_timestamp,
                        unread_count int default 0,
                        encrypted int default 1
                        )`
	sqlInsertConversation = `INSERT INTO conversations(id, participant, username, online, last_message, updated_at, unread_count, encrypted)
                        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	sqlSelectConversations = `SELECT id, participant, username, online, last_message, updated_at, unread_count, encrypted
                        FROM conversations ORDER BY updated_at DESC`
	sqlMarkConversationRead = `UPDATE conversations SET unread_count = 0 WHERE id = ?`
	sqlSumUnreadMessages    = `SELECT COALESCE(SUM(unread_count), 0) FROM conversations`

	sqlCreateMessagesTable = `CREATE TABLE IF NOT EXISTS messages(
                        id uuid NOT NULL PRIMARY KEY,
                        conversation_id uuid NOT NULL,
                        sender varchar(100) NOT NULL,
                        content varchar(1000) NOT NULL,
                        created_at timestamp default current_timestamp,
                        read int default 0
                        )`
	sqlInsertMessage = `INSERT INTO messages(id, conversation_id, sender, content, created_at, read)
                        VALUES (?, ?, ?, ?, ?, ?)`
	sqlSelectMessagesByConversation = `SELECT id, conversation_id, sender, content, created_at, read
                        FROM messages WHERE conversation_id = ? ORDER BY created_at ASC`

	sqlCreateThreadsTable = `CREATE TABLE IF NOT EXISTS threads(
                        id uuid NOT NULL PRIMARY KEY,
                        title varchar(200) NOT NULL,
                        author varchar(100) NOT NULL,
                        trust_score int NOT NULL,
                        category varchar(50),
                        content varchar(1000),
                        created_at timestamp default current_timestamp,
                        replies int default 0,
                        likes int default 0,
                        pinned int default 0,
                        locked int default 0
                        )`
	sqlInsertThread = `INSERT INTO threads(id, title, author, trust_score, category, content, created_at, replies, likes, pinned, locked)
                        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	sqlSelectThreads = `SELECT id, title, author, trust_score, category, content, created_at, replies, likes, pinned, locked
                        FROM threads ORDER BY pinned DESC, created_at DESC`

	sqlCreateNotificationsTable = `CREATE TABLE IF NOT EXISTS notifications(
                        id uuid NOT NULL PRIMARY KEY,
                        kind varchar(20) NOT NULL,
                        actor varchar(100) NOT NULL,
                        content varchar(500) NOT NULL,
                        created_at timestamp default current_timestamp,
                        read int default 0
                        )`
	sqlInsertNotification = `INSERT INTO notifications(id, kind, actor, content, created_at, read)
                        VALUES (?, ?, ?, ?, ?, ?)`
	sqlSelectNotifications = `SELECT id, kind, actor, content, created_at, read
                        FROM notifications ORDER BY created_at DESC`
	sqlMarkNotificationsRead = `UPDATE notifications SET read = 1`
	sqlCountUnreadNotifs     = `SELECT COUNT(*) FROM notifications WHERE read = 0`

	sqlCreateTrendingTable = `CREATE TABLE IF NOT EXISTS trending(
                        id uuid NOT NULL PRIMARY KEY,
                        kind varchar(20) NOT NULL,
                        title varchar(200) NOT NULL,
                        count int default 0,
                        rising int default 0,
                        change int default 0,
                        category varchar(50)
                        )`
	sqlInsertTrending = `INSERT INTO trending(id, kind, title, count, rising, change, category)
                        VALUES (?, ?, ?, ?, ?, ?, ?)`
	sqlSelectTrending = `SELECT id, kind, title, count, rising, change, category
                        FROM trending ORDER BY count DESC`

	sqlCreateParticipantsTable = `CREATE TABLE IF NOT EXISTS participants(
                        id uuid NOT NULL PRIMARY KEY,
                        name varchar(100) NOT NULL,
                        muted int default 0,
                        video_off int default 0
                        )`
	sqlInsertParticipant  = `INSERT INTO participants(id, name, muted, video_off) VALUES (?, ?, ?, ?)`
	sqlSelectParticipants = `SELECT id, name, muted, video_off FROM participants ORDER BY name ASC`
)

func (db *DB) ReadAllPosts() (error, *[]domain.Post) {
	rows, err := db.db.Query(sqlSelectAllPosts)
	if err != nil {
		return err, nil
	}
	return scanPosts(rows)
}

// SearchPosts matches posts whose content or author contains the query.
func (db *DB) SearchPosts(query string) (error, *[]domain.Post) {
	pattern := "%" + query + "%"
	rows, err := db.db.Query(sqlSelectPostsByQuery, pattern, pattern, pattern)
	if err != nil {
		return err, nil
	}
	return scanPosts(rows)
}

func (db *DB) AddPostLikes(id uuid.UUID, delta int) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlUpdatePostLikes, delta, id)
		return err
	})
}

func (db *DB) ReadCommunities() (error, *[]domain.Community) {
	rows, err := db.db.Query(sqlSelectCommunities)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	var communities []domain.Community
	for rows.Next() {
		var c domain.Community
		if err := rows.Scan(&c.Id, &c.Name, &c.Description, &c.Members, &c.Posts,
			&c.Category, &c.ModerationLevel, &c.Joined, &c.Verified, &c.Private); err != nil {
			return err, &communities
		}
		communities = append(communities, c)
	}
	if err = rows.Err(); err != nil {
		return err, &communities
	}
	return nil, &communities
}

func (db *DB) UpdateCommunityJoined(id uuid.UUID, joined bool) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		v := 0
		if joined {
			v = 1
		}
		_, err := tx.Exec(sqlUpdateCommunityJoined, v, id)
		return err
	})
}

func (db *DB) ReadConversations() (error, *[]domain.Conversation) {
	rows, err := db.db.Query(sqlSelectConversations)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	var conversations []domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(&c.Id, &c.Participant, &c.Username, &c.Online,
			&c.LastMessage, &c.UpdatedAt, &c.UnreadCount, &c.Encrypted); err != nil {
			return err, &conversations
		}
		conversations = append(conversations, c)
	}
	if err = rows.Err(); err != nil {
		return err, &conversations
	}
	return nil, &conversations
}

func (db *DB) MarkConversationRead(id uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlMarkConversationRead, id)
		return err
	})
}

func (db *DB) ReadMessagesByConversation(conversationId uuid.UUID) (error, *[]domain.Message) {
	rows, err := db.db.Query(sqlSelectMessagesByConversation, conversationId)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.Id, &m.ConversationId, &m.Sender, &m.Content, &m.CreatedAt, &m.Read); err != nil {
			return err, &messages
		}
		messages = append(messages, m)
	}
	if err = rows.Err(); err != nil {
		return err, &messages
	}
	return nil, &messages
}

func (db *DB) ReadThreads() (error, *[]domain.Thread) {
	rows, err := db.db.Query(sqlSelectThreads)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	var threads []domain.Thread
	for rows.Next() {
		var t domain.Thread
		if err := rows.Scan(&t.Id, &t.Title, &t.Author, &t.TrustScore, &t.Category,
			&t.Content, &t.CreatedAt, &t.Replies, &t.Likes, &t.Pinned, &t.Locked); err != nil {
			return err, &threads
		}
		threads = append(threads, t)
	}
	if err = rows.Err(); err != nil {
		return err, &threads
	}
	return nil, &threads
}

func (db *DB) ReadNotifications() (error, *[]domain.Notification) {
	rows, err := db.db.Query(sqlSelectNotifications)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.Id, &n.Kind, &n.Actor, &n.Content, &n.CreatedAt, &n.Read); err != nil {
			return err, &notifications
		}
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		return err, &notifications
	}
	return nil, &notifications
}

func (db *DB) MarkNotificationsRead() error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlMarkNotificationsRead)
		return err
	})
}

func (db *DB) ReadTrending() (error, *[]domain.TrendingItem) {
	rows, err := db.db.Query(sqlSelectTrending)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	var items []domain.TrendingItem
	for rows.Next() {
		var t domain.TrendingItem
		if err := rows.Scan(&t.Id, &t.Kind, &t.Title, &t.Count, &t.Rising, &t.Change, &t.Category); err != nil {
			return err, &items
		}
		items = append(items, t)
	}
	if err = rows.Err(); err != nil {
		return err, &items
	}
	return nil, &items
}

func (db *DB) ReadCallParticipants() (error, *[]domain.CallParticipant) {
	rows, err := db.db.Query(sqlSelectParticipants)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	var participants []domain.CallParticipant
	for rows.Next() {
		var p domain.CallParticipant
		if err := rows.Scan(&p.Id, &p.Name, &p.Muted, &p.VideoOff); err != nil {
			return err, &participants
		}
		participants = append(participants, p)
	}
	if err = rows.Err(); err != nil {
		return err, &participants
	}
	return nil, &participants
}

// CountUnreadMessages sums the unread counters across conversations,
// for the sidebar badge.
func (db *DB) CountUnreadMessages() (error, int) {
	var count int
	err := db.db.QueryRow(sqlSumUnreadMessages).Scan(&count)
	return err, count
}

func (db *DB) CountUnreadNotifications() (error, int) {
	var count int
	err := db.db.QueryRow(sqlCountUnreadNotifs).Scan(&count)
	return err, count
}
