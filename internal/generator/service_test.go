package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"socialpost/internal/llm"
	"socialpost/internal/response"
	"socialpost/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeClient replies with canned text and records every request.
type fakeClient struct {
	mu       sync.Mutex
	reply    func(req llm.Request) (string, error)
	requests []llm.Request
}

func (f *fakeClient) Generate(_ context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return f.reply(req)
}

func (f *fakeClient) Model() string { return "fake" }

func (f *fakeClient) last() llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func replying(text string) *fakeClient {
	return &fakeClient{reply: func(llm.Request) (string, error) { return text, nil }}
}

func failing(err error) *fakeClient {
	return &fakeClient{reply: func(llm.Request) (string, error) { return "", err }}
}

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func newTestService(c llm.Client) *Service {
	n := 0
	return NewService(c,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { n++; return fmt.Sprintf("post-%d", n) }),
	)
}

func testBrand() types.Brand {
	return types.Brand{ID: "b1", Name: "Bean", Description: "Coffee roaster", Dialect: types.DialectEnglish}
}

func postsReq(count int) PostsRequest {
	return PostsRequest{
		Platform:    types.PlatformInstagram,
		Tone:        types.ToneFriendly,
		Count:       count,
		ContentType: types.ContentSocialPost,
		Topic:       "summer menu",
	}
}

const twoPosts = "```json\n" + `{"posts":[
  {"text":"First","tov_phrase":"Sip happy","visual_inspiration":{"description":"cup","color_palette":["#111111","#222222"],"image_prompt":"macro shot"}},
  {"text":"Second","tov_phrase":"Cold and bold","visual_inspiration":{"description":"ice","color_palette":["#333333"],"image_prompt":"ice cubes"}}
]}` + "\n```"

func TestGeneratePosts(t *testing.T) {
	client := replying(twoPosts)
	svc := newTestService(client)

	drafts, err := svc.GeneratePosts(context.Background(), testBrand(), postsReq(2))
	require.NoError(t, err)

	want := []Draft{
		{Text: "First", TovPhrase: "Sip happy", VisualInspiration: &types.VisualInspiration{Description: "cup", ColorPalette: []string{"#111111", "#222222"}, ImagePrompt: "macro shot"}},
		{Text: "Second", TovPhrase: "Cold and bold", VisualInspiration: &types.VisualInspiration{Description: "ice", ColorPalette: []string{"#333333"}, ImagePrompt: "ice cubes"}},
	}
	if diff := cmp.Diff(want, drafts); diff != "" {
		t.Errorf("drafts mismatch (-want +got):\n%s", diff)
	}

	req := client.last()
	require.NotNil(t, req.Schema)
	assert.Contains(t, req.Schema.Required, "posts")
	assert.Contains(t, req.Prompt, "create 2 complete content pieces")
	assert.False(t, req.DisableThinking)
}

func TestGeneratePosts_CountMismatch(t *testing.T) {
	t.Run("extra drafts are dropped", func(t *testing.T) {
		drafts, err := newTestService(replying(twoPosts)).GeneratePosts(context.Background(), testBrand(), postsReq(1))
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Equal(t, "First", drafts[0].Text)
	})

	t.Run("shortfall is accepted", func(t *testing.T) {
		drafts, err := newTestService(replying(twoPosts)).GeneratePosts(context.Background(), testBrand(), postsReq(5))
		require.NoError(t, err)
		assert.Len(t, drafts, 2)
	})

	t.Run("out of range count reaches the prompt", func(t *testing.T) {
		client := replying(twoPosts)
		_, err := newTestService(client).GeneratePosts(context.Background(), testBrand(), postsReq(99))
		require.NoError(t, err)
		assert.Contains(t, client.last().Prompt, "create 99 complete")
	})
}

func TestGeneratePosts_Errors(t *testing.T) {
	cases := map[string]struct {
		client *fakeClient
		kind   Kind
	}{
		"network":     {failing(errors.New("dial tcp: connection refused")), KindTransport},
		"prose":       {replying("Here are your posts!"), KindMalformed},
		"empty":       {replying(""), KindMalformed},
		"empty list":  {replying(`{"posts":[]}`), KindMalformed},
		"missing key": {replying(`{"items":[{"text":"x"}]}`), KindMalformed},
		"blank text":  {replying(`{"posts":[{"text":"  ","tov_phrase":"t"}]}`), KindMalformed},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			drafts, err := newTestService(tc.client).GeneratePosts(context.Background(), testBrand(), postsReq(2))
			require.Error(t, err)
			assert.Nil(t, drafts)

			var ge *Error
			require.ErrorAs(t, err, &ge)
			assert.Equal(t, TaskPosts, ge.Task)
			assert.Equal(t, tc.kind, ge.Kind)
			assert.Equal(t, tc.kind == KindMalformed, IsMalformed(err))
		})
	}
}

func TestGeneratePosts_InvalidRequestSkipsRemoteCall(t *testing.T) {
	client := replying(twoPosts)
	req := postsReq(2)
	req.Platform = 0

	_, err := newTestService(client).GeneratePosts(context.Background(), testBrand(), req)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, client.requests)
}

func TestErrorMessages(t *testing.T) {
	transport := &Error{Task: TaskHashtags, Kind: KindTransport, Err: errors.New("timeout")}
	assert.Equal(t, "failed to generate hashtags", transport.Error())

	malformed := &Error{Task: TaskPosts, Kind: KindMalformed, Err: response.ErrMalformed}
	assert.Contains(t, malformed.Error(), "unexpected response, please try again")
	assert.NotEqual(t, (&Error{Task: TaskPosts, Kind: KindTransport}).Error(), malformed.Error())
	assert.ErrorIs(t, malformed, response.ErrMalformed)

	for task := TaskPosts; task < taskEnd; task++ {
		assert.NotEmpty(t, taskFailures[task], task.String())
	}
}

const campaignReply = `{"campaignPosts":[
  {"day":1,"theme":"Teaser","text":"Something is brewing","tov_phrase":"Wait for it","visual_inspiration":{"description":"d","color_palette":["#000000"],"image_prompt":"p"}},
  {"day":0,"theme":"Reveal","text":"Meet our new blend","tov_phrase":"It's here","visual_inspiration":{"description":"d","color_palette":["#ffffff"],"image_prompt":"p"}},
  {"day":3,"theme":"Extra","text":"Should be dropped","tov_phrase":"x","visual_inspiration":{"description":"d","color_palette":[],"image_prompt":"p"}}
]}`

func TestGenerateCampaign(t *testing.T) {
	client := replying(campaignReply)
	svc := newTestService(client)

	drafts, err := svc.GenerateCampaign(context.Background(), testBrand(), CampaignRequest{
		Goal:     types.GoalProductLaunch,
		Days:     2,
		Topic:    "new blend",
		Platform: types.PlatformInstagram,
		Tone:     types.ToneBold,
	})
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	assert.Equal(t, 1, drafts[0].Day)
	assert.Equal(t, "Teaser", drafts[0].Theme)
	assert.Equal(t, 2, drafts[1].Day, "missing day falls back to position")
	assert.Equal(t, "Meet our new blend", drafts[1].Text)
	assert.Contains(t, client.last().Schema.Required, "campaignPosts")
}

func TestGenerateCampaign_Failure(t *testing.T) {
	_, err := newTestService(failing(context.DeadlineExceeded)).GenerateCampaign(context.Background(), testBrand(), CampaignRequest{
		Goal: types.GoalBrandAwareness, Days: 3, Platform: types.PlatformX, Tone: types.ToneBold,
	})
	assert.EqualError(t, err, "failed to generate the campaign")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGenerateTopicIdeas(t *testing.T) {
	client := replying("```json\n{\"ideas\":[\"a\",\" \",\"b\"]}\n```")
	ideas, err := newTestService(client).GenerateTopicIdeas(context.Background(), "Vegan bakery", types.DialectGulf)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ideas)
	assert.Contains(t, client.last().Prompt, "Arabic (Gulf dialect)")

	_, err = newTestService(replying(`{"ideas":[]}`)).GenerateTopicIdeas(context.Background(), "x", types.DialectEnglish)
	assert.True(t, IsMalformed(err))
}

func TestGenerateTopicIdeas_ChattyReply(t *testing.T) {
	client := replying("Here are your ideas:\n```json\n{\"ideas\":[\"Latte art\",\"Bean origins\"]}\n```\nEnjoy!")
	ideas, err := newTestService(client).GenerateTopicIdeas(context.Background(), "Coffee shop", types.DialectEnglish)
	require.NoError(t, err)
	assert.Equal(t, []string{"Latte art", "Bean origins"}, ideas)
}

func TestGenerateHashtags(t *testing.T) {
	tags, err := newTestService(replying(`{"hashtags":["#coffee","summer vibes"," #IcedLatte ",""]}`)).
		GenerateHashtags(context.Background(), "text", types.DialectEnglish)
	require.NoError(t, err)
	assert.Equal(t, []string{"#coffee", "#summervibes", "#IcedLatte"}, tags)
}

func TestRefinePost(t *testing.T) {
	client := replying("  Shorter copy.\n")
	out, err := newTestService(client).RefinePost(context.Background(), "Long copy", Refinement{Action: types.RefineShorten}, types.DialectEnglish)
	require.NoError(t, err)
	assert.Equal(t, "Shorter copy.", out)

	req := client.last()
	assert.Nil(t, req.Schema, "refinement is free text")
	assert.Contains(t, req.Prompt, "X/Twitter")
}

func TestRefinePost_Validation(t *testing.T) {
	client := replying("x")
	svc := newTestService(client)

	_, err := svc.RefinePost(context.Background(), "t", Refinement{Action: types.RefineChangeTone}, types.DialectEnglish)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	_, err = svc.RefinePost(context.Background(), "t", Refinement{}, types.DialectEnglish)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, client.requests)

	_, err = svc.RefinePost(context.Background(), "t", Refinement{Action: types.RefineChangeTone, Tone: types.ToneFunny}, types.DialectEnglish)
	require.NoError(t, err)
	assert.Contains(t, client.last().Prompt, "to Funny.")
}

func TestRefinePost_EmptyAnswer(t *testing.T) {
	_, err := newTestService(replying("   ")).RefinePost(context.Background(), "t", Refinement{Action: types.RefineRephrase}, types.DialectEnglish)
	assert.True(t, IsMalformed(err))
}

func TestGenerateTagline(t *testing.T) {
	client := replying("\"Quality in every cup\"\n")
	out, err := newTestService(client).GenerateTagline(context.Background(), "text", "desc", types.DialectEnglish)
	require.NoError(t, err)
	assert.Equal(t, "Quality in every cup", out)

	req := client.last()
	assert.Equal(t, int32(20), req.MaxOutputTokens)
	assert.True(t, req.DisableThinking)
	assert.Nil(t, req.Schema)
}

func TestNilClient(t *testing.T) {
	_, err := NewService(nil).GenerateHashtags(context.Background(), "t", types.DialectEnglish)
	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, KindTransport, ge.Kind)
	assert.ErrorIs(t, err, llm.ErrNoAPIKey)
}

func TestMaterializePosts(t *testing.T) {
	svc := newTestService(nil)
	drafts := []Draft{{Text: "a", TovPhrase: "ta"}, {Text: "b", TovPhrase: "tb"}}

	posts := svc.MaterializePosts(drafts, postsReq(2))
	require.Len(t, posts, 2)
	assert.Equal(t, types.Post{
		ID:            "post-1",
		Text:          "a",
		TovPhrase:     "ta",
		DateGenerated: fixedNow,
		Platform:      types.PlatformInstagram,
		ContentType:   types.ContentSocialPost,
		Topic:         "summer menu",
		Hashtags:      []string{},
	}, posts[0])
	assert.Equal(t, "post-2", posts[1].ID)
	assert.False(t, posts[0].IsCampaign())
}

func TestMaterializeCampaign(t *testing.T) {
	svc := newTestService(nil)
	drafts := []CampaignDraft{{Draft: Draft{Text: "day one"}, Day: 1, Theme: "Teaser"}}

	posts := svc.MaterializeCampaign(drafts, CampaignRequest{Goal: types.GoalSpecialOffer, Days: 1, Topic: "sale", Platform: types.PlatformTikTok, Tone: types.ToneFunny})
	require.Len(t, posts, 1)
	assert.Equal(t, types.ContentSocialPost, posts[0].ContentType)
	assert.Equal(t, types.PlatformTikTok, posts[0].Platform)
	assert.Equal(t, "Teaser", posts[0].CampaignTheme)
	assert.Equal(t, 1, posts[0].DayInCampaign)
	assert.True(t, posts[0].IsCampaign())
	assert.True(t, strings.HasPrefix(posts[0].ID, "post-"))
}
