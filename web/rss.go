package web

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/feeds"
	"github.com/trustnet/trustnet/db"
	"github.com/trustnet/trustnet/domain"
	"github.com/trustnet/trustnet/util"
)

func GetRSS(conf *util.AppConfig, database *db.DB, username string) (string, error) {

	err, posts := database.ReadAllPosts()
	if err != nil || posts == nil {
		log.Println("Could not get posts!", err)
		return "", errors.New("error retrieving posts")
	}

	link := fmt.Sprintf("http://%s:%d/feed", conf.Conf.Host, conf.Conf.HttpPort)
	title := "TrustNet Feed"
	createdBy := "everyone"

	selected := *posts
	if username != "" {
		var filtered []domain.Post
		for _, post := range selected {
			if post.Username == username {
				filtered = append(filtered, post)
			}
		}
		if filtered == nil {
			log.Println(fmt.Sprintf("No posts from %s!", username))
			return "", errors.New("error retrieving posts by username")
		}
		selected = filtered
		title = fmt.Sprintf("TrustNet Feed - %s", username)
		createdBy = username
		link = fmt.Sprintf("%s?username=%s", link, username)
	}

	feed := &feeds.Feed{
		Title:       title,
		Link:        &feeds.Link{Href: link},
		Description: "rss export of the trustnet sample feed",
		Author:      &feeds.Author{Name: createdBy, Email: fmt.Sprintf("%s@trustnet", createdBy)},
		Created:     time.Now(),
	}

	var feedItems []*feeds.Item
	for _, post := range selected {
		email := fmt.Sprintf("%s@trustnet", post.Username)
		feedItems = append(feedItems,
			&feeds.Item{
				Id:      post.Id.String(),
				Title:   fmt.Sprintf("%s - %s", post.Author, post.CreatedAt.Format(util.DateTimeFormat())),
				Link:    &feeds.Link{Href: fmt.Sprintf("http://%s:%d/feed/%s", conf.Conf.Host, conf.Conf.HttpPort, post.Id)},
				Content: post.Content,
				Author:  &feeds.Author{Name: post.Author, Email: email},
				Created: post.CreatedAt,
			})
	}

	feed.Items = feedItems
	return feed.ToRss()
}

func GetRSSItem(conf *util.AppConfig, database *db.DB, id uuid.UUID) (string, error) {
	err, posts := database.ReadAllPosts()
	if err != nil || posts == nil {
		log.Println("Could not get posts!", err)
		return "", errors.New("error retrieving posts")
	}

	var post *domain.Post
	for i := range *posts {
		if (*posts)[i].Id == id {
			post = &(*posts)[i]
			break
		}
	}
	if post == nil {
		return "", errors.New("error retrieving post by id")
	}

	email := fmt.Sprintf("%s@trustnet", post.Username)
	url := fmt.Sprintf("http://%s:%d/feed/%s", conf.Conf.Host, conf.Conf.HttpPort, post.Id)

	feed := &feeds.Feed{
		Title:       "Single TrustNet Post",
		Link:        &feeds.Link{Href: url},
		Description: "rss export of the trustnet sample feed",
		Author:      &feeds.Author{Name: post.Author, Email: email},
		Created:     time.Now(),
	}

	feed.Items = []*feeds.Item{
		{
			Id:      post.Id.String(),
			Title:   fmt.Sprintf("%s - %s", post.Author, post.CreatedAt.Format(util.DateTimeFormat())),
			Link:    &feeds.Link{Href: url},
			Content: post.Content,
			Author:  &feeds.Author{Name: post.Author, Email: email},
			Created: post.CreatedAt,
		},
	}

	return feed.ToRss()
}
