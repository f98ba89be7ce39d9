package leetcode

import (
	"context"
	"net/http"
	"strconv"
	"time"

	walog "go.mau.fi/whatsmeow/util/log"

	"github.com/fardannozami/leetcode-tracker/internal/domain"
)

const (
	DefaultEndpoint  = "https://leetcode.com/graphql"
	DefaultPageSize  = 5000
	userAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	maxResponseBytes = 64 << 20
)

const problemListQuery = `
query problemsetQuestionList($categorySlug: String, $limit: Int, $skip: Int, $filters: QuestionListFilterInput) {
	problemsetQuestionList(
		categorySlug: $categorySlug
		limit: $limit
		skip: $skip
		filters: $filters
	) {
		total
		questions {
			questionId
			title
			titleSlug
			difficulty
			topicTags { name }
			acRate
			isPaidOnly
		}
	}
}`

const problemDetailQuery = `
query questionData($titleSlug: String!) {
	question(titleSlug: $titleSlug) {
		questionId
		title
		titleSlug
		content
		difficulty
		topicTags { name }
		exampleTestcases
		categoryTitle
		isPaidOnly
	}
}`

const dailyChallengeQuery = `
query questionOfToday {
	activeDailyCodingChallengeQuestion {
		date
		link
		question {
			questionId
			title
			titleSlug
			difficulty
			isPaidOnly
		}
	}
}`

type topicTag struct {
	Name string `json:"name"`
}

type question struct {
	QuestionID       string     `json:"questionId"`
	Title            string     `json:"title"`
	TitleSlug        string     `json:"titleSlug"`
	Content          *string    `json:"content"`
	Difficulty       string     `json:"difficulty"`
	TopicTags        []topicTag `json:"topicTags"`
	AcRate           float64    `json:"acRate"`
	IsPaidOnly       bool       `json:"isPaidOnly"`
	ExampleTestcases *string    `json:"exampleTestcases"`
	CategoryTitle    *string    `json:"categoryTitle"`
}

// Client talks to the LeetCode GraphQL API. It owns its HTTP client, so
// every call is bounded by the configured timeout.
type Client struct {
	endpoint   string
	pageSize   int
	httpClient *http.Client
	log        walog.Logger
}

func NewClient(endpoint string, timeout time.Duration, pageSize int, logger walog.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if logger == nil {
		logger = walog.Noop
	}
	return &Client{
		endpoint:   endpoint,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger,
	}
}

// ListProblems fetches the catalog in a single page of pageSize entries.
// Entries that cannot be converted are dropped.
func (c *Client) ListProblems(ctx context.Context) []domain.ProblemSummary {
	var data struct {
		ProblemsetQuestionList *struct {
			Total     int        `json:"total"`
			Questions []question `json:"questions"`
		} `json:"problemsetQuestionList"`
	}
	variables := map[string]any{
		"categorySlug": "",
		"limit":        c.pageSize,
		"skip":         0,
		"filters":      map[string]any{},
	}
	if err := c.sendGraphqlQuery(ctx, problemListQuery, variables, &data); err != nil {
		c.log.Errorf("Failed to fetch problem list: %v", err)
		return nil
	}
	if data.ProblemsetQuestionList == nil {
		c.log.Warnf("Problem list missing from response")
		return nil
	}

	summaries := make([]domain.ProblemSummary, 0, len(data.ProblemsetQuestionList.Questions))
	for _, q := range data.ProblemsetQuestionList.Questions {
		summary, err := toSummary(q)
		if err != nil {
			c.log.Warnf("Skipping problem %q: %v", q.TitleSlug, err)
			continue
		}
		summaries = append(summaries, summary)
	}
	c.log.Debugf("Fetched %d of %d problems", len(summaries), data.ProblemsetQuestionList.Total)
	return summaries
}

func (c *Client) GetDetail(ctx context.Context, slug string) *domain.ProblemDetail {
	var data struct {
		Question *question `json:"question"`
	}
	if err := c.sendGraphqlQuery(ctx, problemDetailQuery, map[string]any{"titleSlug": slug}, &data); err != nil {
		c.log.Errorf("Failed to fetch problem %s: %v", slug, err)
		return nil
	}
	if data.Question == nil {
		c.log.Warnf("Problem %s not found", slug)
		return nil
	}

	summary, err := toSummary(*data.Question)
	if err != nil {
		c.log.Warnf("Invalid detail for %s: %v", slug, err)
		return nil
	}
	return &domain.ProblemDetail{
		ExternalID:       summary.ExternalID,
		Title:            summary.Title,
		Slug:             summary.Slug,
		Content:          deref(data.Question.Content),
		Category:         deref(data.Question.CategoryTitle),
		Difficulty:       summary.Difficulty,
		Tags:             summary.Tags,
		ExampleTestcases: deref(data.Question.ExampleTestcases),
		PaidOnly:         summary.PaidOnly,
	}
}

func (c *Client) GetDailyChallenge(ctx context.Context) *domain.DailyChallengePayload {
	var data struct {
		Active *struct {
			Date     string    `json:"date"`
			Link     string    `json:"link"`
			Question *question `json:"question"`
		} `json:"activeDailyCodingChallengeQuestion"`
	}
	if err := c.sendGraphqlQuery(ctx, dailyChallengeQuery, map[string]any{}, &data); err != nil {
		c.log.Errorf("Failed to fetch daily challenge: %v", err)
		return nil
	}
	if data.Active == nil || data.Active.Question == nil {
		c.log.Warnf("Daily challenge missing from response")
		return nil
	}

	summary, err := toSummary(*data.Active.Question)
	if err != nil {
		c.log.Warnf("Invalid daily challenge question: %v", err)
		return nil
	}
	return &domain.DailyChallengePayload{
		Date:     data.Active.Date,
		Link:     data.Active.Link,
		Question: summary,
	}
}

func toSummary(q question) (domain.ProblemSummary, error) {
	id, err := strconv.Atoi(q.QuestionID)
	if err != nil {
		return domain.ProblemSummary{}, err
	}
	difficulty, err := domain.ParseDifficulty(q.Difficulty)
	if err != nil {
		return domain.ProblemSummary{}, err
	}

	tags := make([]string, 0, len(q.TopicTags))
	for _, t := range q.TopicTags {
		tags = append(tags, t.Name)
	}
	return domain.ProblemSummary{
		ExternalID:     id,
		Title:          q.Title,
		Slug:           q.TitleSlug,
		Difficulty:     difficulty,
		Tags:           tags,
		AcceptanceRate: q.AcRate,
		PaidOnly:       q.IsPaidOnly,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
