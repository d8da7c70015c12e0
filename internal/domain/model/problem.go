package model

import (
	"time"
)

type ProblemDifficulty string

const (
	DifficultyEasy   ProblemDifficulty = "Easy"
	DifficultyMedium ProblemDifficulty = "Medium"
	DifficultyHard   ProblemDifficulty = "Hard"
)

// Problem is a single practice exercise. The four links point at external
// references (practice sites, a video walkthrough, an article) and may all be
// absent.
type Problem struct {
	ID             string            `json:"id"`
	TopicID        string            `json:"topic_id"`
	Title          string            `json:"title"`
	Slug           string            `json:"slug"`
	Description    string            `json:"description"`
	Difficulty     ProblemDifficulty `json:"difficulty"`
	LeetcodeLink   *string           `json:"leetcode_link,omitempty"`
	CodeforcesLink *string           `json:"codeforces_link,omitempty"`
	YoutubeLink    *string           `json:"youtube_link,omitempty"`
	ArticleLink    *string           `json:"article_link,omitempty"`
	OrderIndex     int               `json:"order_index"`
	CreatedAt      time.Time         `json:"created_at"`
}
