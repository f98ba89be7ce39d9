package leetcode_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	walog "go.mau.fi/whatsmeow/util/log"

	"github.com/fardannozami/leetcode-tracker/internal/domain"
	"github.com/fardannozami/leetcode-tracker/internal/infra/leetcode"
)

// fakeGraphQL answers by operation name with a canned JSON body.
func fakeGraphQL(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		for op, body := range bodies {
			if strings.Contains(req.Query, "query "+op) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(body))
				return
			}
		}
		http.Error(w, "unknown operation", http.StatusBadRequest)
	}))
}

func newClient(url string) *leetcode.Client {
	return leetcode.NewClient(url, 2*time.Second, 100, walog.Noop)
}

func TestClient_ListProblems(t *testing.T) {
	srv := fakeGraphQL(t, map[string]string{
		"problemsetQuestionList": `{"data":{"problemsetQuestionList":{"total":3,"questions":[
			{"questionId":"1","title":"Two Sum","titleSlug":"two-sum","difficulty":"Easy","topicTags":[{"name":"Array"},{"name":"Hash Table"}],"acRate":49.5,"isPaidOnly":false},
			{"questionId":"oops","title":"Broken","titleSlug":"broken","difficulty":"Easy","topicTags":[],"acRate":1,"isPaidOnly":false},
			{"questionId":"4","title":"Median","titleSlug":"median-of-two-sorted-arrays","difficulty":"Hard","topicTags":[],"acRate":38.1,"isPaidOnly":true}
		]}}}`,
	})
	defer srv.Close()

	got := newClient(srv.URL).ListProblems(context.Background())
	if len(got) != 2 {
		t.Fatalf("Expected 2 valid summaries, got %d", len(got))
	}
	first := got[0]
	if first.ExternalID != 1 || first.Slug != "two-sum" || first.Difficulty != domain.DifficultyEasy {
		t.Errorf("Unexpected first summary: %+v", first)
	}
	if len(first.Tags) != 2 || first.Tags[0] != "Array" {
		t.Errorf("Tags: got %v", first.Tags)
	}
	if got[1].Difficulty != domain.DifficultyHard || !got[1].PaidOnly || got[1].AcceptanceRate != 38.1 {
		t.Errorf("Unexpected second summary: %+v", got[1])
	}
}

func TestClient_ListProblems_ServerErrorIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if got := newClient(srv.URL).ListProblems(context.Background()); len(got) != 0 {
		t.Errorf("Expected empty result, got %d entries", len(got))
	}
}

func TestClient_GraphQLErrorIsAbsent(t *testing.T) {
	srv := fakeGraphQL(t, map[string]string{
		"questionData": `{"errors":[{"message":"rate limited"}],"data":null}`,
	})
	defer srv.Close()

	if got := newClient(srv.URL).GetDetail(context.Background(), "two-sum"); got != nil {
		t.Errorf("Expected nil detail, got %+v", got)
	}
}

func TestClient_GetDetail(t *testing.T) {
	srv := fakeGraphQL(t, map[string]string{
		"questionData": `{"data":{"question":{"questionId":"1","title":"Two Sum","titleSlug":"two-sum",
			"content":"<p>Find two numbers</p>","difficulty":"Easy","topicTags":[{"name":"Array"}],
			"exampleTestcases":"[2,7,11,15]\n9\n\n[3,2,4]\n6","categoryTitle":"Algorithms","isPaidOnly":false}}}`,
	})
	defer srv.Close()

	got := newClient(srv.URL).GetDetail(context.Background(), "two-sum")
	if got == nil {
		t.Fatal("Expected detail")
	}
	if got.Content != "<p>Find two numbers</p>" || got.Category != "Algorithms" {
		t.Errorf("Unexpected detail: %+v", got)
	}
	if got.ExampleTestcases != "[2,7,11,15]\n9\n\n[3,2,4]\n6" {
		t.Errorf("Testcases: got %q", got.ExampleTestcases)
	}
}

func TestClient_GetDetail_NullQuestion(t *testing.T) {
	srv := fakeGraphQL(t, map[string]string{
		"questionData": `{"data":{"question":null}}`,
	})
	defer srv.Close()

	if got := newClient(srv.URL).GetDetail(context.Background(), "missing"); got != nil {
		t.Errorf("Expected nil, got %+v", got)
	}
}

func TestClient_GetDetail_PremiumWithoutContent(t *testing.T) {
	srv := fakeGraphQL(t, map[string]string{
		"questionData": `{"data":{"question":{"questionId":"156","title":"Binary Tree Upside Down","titleSlug":"binary-tree-upside-down",
			"content":null,"difficulty":"Medium","topicTags":[],"exampleTestcases":null,"categoryTitle":"Algorithms","isPaidOnly":true}}}`,
	})
	defer srv.Close()

	got := newClient(srv.URL).GetDetail(context.Background(), "binary-tree-upside-down")
	if got == nil {
		t.Fatal("Expected detail")
	}
	if got.Content != "" || got.ExampleTestcases != "" || !got.PaidOnly {
		t.Errorf("Unexpected detail: %+v", got)
	}
}

func TestClient_GetDailyChallenge(t *testing.T) {
	srv := fakeGraphQL(t, map[string]string{
		"questionOfToday": `{"data":{"activeDailyCodingChallengeQuestion":{"date":"2025-03-01","link":"/problems/two-sum/",
			"question":{"questionId":"1","title":"Two Sum","titleSlug":"two-sum","difficulty":"Easy","isPaidOnly":false}}}}`,
	})
	defer srv.Close()

	got := newClient(srv.URL).GetDailyChallenge(context.Background())
	if got == nil {
		t.Fatal("Expected payload")
	}
	if got.Date != "2025-03-01" || got.Question.ExternalID != 1 || got.Question.Slug != "two-sum" {
		t.Errorf("Unexpected payload: %+v", got)
	}
}

func TestClient_TimeoutIsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	client := leetcode.NewClient(srv.URL, 50*time.Millisecond, 100, walog.Noop)
	if got := client.GetDailyChallenge(context.Background()); got != nil {
		t.Errorf("Expected nil on timeout, got %+v", got)
	}
}
