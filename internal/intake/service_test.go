package intake_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jimezsa/jobtrack/internal/intake"
	"github.com/jimezsa/jobtrack/internal/models"
	"github.com/jimezsa/jobtrack/internal/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	pages map[string]string
	err   error
}

func (f fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.pages[url], nil
}

var fixedDay = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedDay }

const linkedInPage = `<html><head>
<meta property="og:title" content="Acme hiring Software Engineer in Seattle, WA | LinkedIn">
</head><body><p>Full-time</p><p>$120,000/yr</p></body></html>`

func TestService_Process(t *testing.T) {
	t.Parallel()

	const url = "https://www.linkedin.com/jobs/view/42"
	svc := intake.NewService(
		fakeFetcher{pages: map[string]string{url: linkedInPage}},
		intake.WithClock(fixedClock),
	)

	posting, err := svc.Process(context.Background(), url)

	require.NoError(t, err)
	assert.Equal(t, models.PlatformLinkedIn, posting.Platform)
	assert.Equal(t, "Software Engineer", posting.Title)
	assert.Equal(t, "Acme", posting.Company)
	assert.Equal(t, "Seattle, WA", posting.Location)
	assert.Equal(t, "$120,000/yr", posting.Salary)
	assert.Equal(t, models.DefaultStatus, posting.Status)
	assert.Equal(t, url, posting.URL)
	assert.Equal(t, "2026-03-14", posting.DateAdded.String())
}

func TestService_ProcessOptions(t *testing.T) {
	t.Parallel()

	const url = "https://www.linkedin.com/jobs/view/43"
	svc := intake.NewService(
		fakeFetcher{pages: map[string]string{url: linkedInPage}},
		intake.WithClock(fixedClock),
		intake.WithStatus("Applied"),
		intake.WithSalaryNormalization(true),
	)

	posting, err := svc.Process(context.Background(), url)

	require.NoError(t, err)
	assert.Equal(t, "Applied", posting.Status)
	assert.Equal(t, "$120,000/yr (~$57.69/hr)", posting.Salary)
}

func TestService_ProcessFetchError(t *testing.T) {
	t.Parallel()

	fetchErr := &network.FetchError{URL: "https://example.com/x", StatusCode: 503, Err: errors.New("http 503")}
	svc := intake.NewService(fakeFetcher{err: fetchErr})

	posting, err := svc.Process(context.Background(), "https://example.com/x")

	require.Error(t, err)
	assert.Same(t, fetchErr, err)
	assert.ErrorIs(t, err, network.ErrFetch)
	assert.Equal(t, models.JobPosting{}, posting)
}

func TestService_ProcessGenericFallback(t *testing.T) {
	t.Parallel()

	const url = "https://careers.globex.com/jobs/7"
	svc := intake.NewService(fakeFetcher{pages: map[string]string{
		url: `<html><body><h1>Site Reliability Engineer</h1><p>Remote</p></body></html>`,
	}})

	posting, err := svc.Process(context.Background(), url)

	require.NoError(t, err)
	assert.Equal(t, models.PlatformOther, posting.Platform)
	assert.Equal(t, "Site Reliability Engineer", posting.Title)
	assert.Equal(t, "Globex", posting.Company)
	assert.Equal(t, models.RemoteRemote, posting.Remote)
}

func TestService_ProcessPastedText(t *testing.T) {
	t.Parallel()

	svc := intake.NewService(nil, intake.WithClock(fixedClock), intake.WithSalaryNormalization(true))
	text := "TechCorp logo\nSoftware Engineering Intern\nTechCorp\nNew York, NY\nInternship\nRemote\n$30/hr"

	t.Run("platform from url", func(t *testing.T) {
		t.Parallel()

		posting := svc.ProcessPastedText("https://app.joinhandshake.com/jobs/123", text)

		assert.Equal(t, models.PlatformHandshake, posting.Platform)
		assert.Equal(t, "Software Engineering Intern", posting.Title)
		assert.Equal(t, "TechCorp", posting.Company)
		assert.Equal(t, "New York, NY", posting.Location)
		assert.Equal(t, "$30.00/hr (~$62,400/yr)", posting.Salary)
		assert.Equal(t, models.JobTypeInternship, posting.JobType)
		assert.Equal(t, models.RemoteRemote, posting.Remote)
		assert.Equal(t, "2026-03-14", posting.DateAdded.String())
	})

	t.Run("unknown url is other", func(t *testing.T) {
		t.Parallel()

		posting := svc.ProcessPastedText("https://jobs.example.org/1", text)

		assert.Equal(t, models.PlatformOther, posting.Platform)
	})
}

func TestService_ConcurrentUse(t *testing.T) {
	t.Parallel()

	const url = "https://www.linkedin.com/jobs/view/44"
	svc := intake.NewService(fakeFetcher{pages: map[string]string{url: linkedInPage}})

	var wg sync.WaitGroup
	results := make([]models.JobPosting, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			posting, err := svc.Process(context.Background(), url)
			assert.NoError(t, err)
			results[i] = posting
		}(i)
	}
	wg.Wait()

	for _, posting := range results {
		assert.Equal(t, "Software Engineer", posting.Title)
	}
}

func TestService_Platforms(t *testing.T) {
	t.Parallel()

	svc := intake.NewService(nil)

	assert.Equal(t, []string{
		models.PlatformLinkedIn,
		models.PlatformHandshake,
		models.PlatformIndeed,
		models.PlatformGlassdoor,
		models.PlatformOther,
	}, svc.Platforms())
}

func TestValidateURL(t *testing.T) {
	t.Parallel()

	assert.NoError(t, intake.ValidateURL("https://www.linkedin.com/jobs/view/1"))
	assert.NoError(t, intake.ValidateURL(" http://example.com "))

	for _, bad := range []string{"", "   ", "linkedin.com/jobs/1", "ftp://example.com/x", "https://"} {
		assert.ErrorIs(t, intake.ValidateURL(bad), intake.ErrInvalidURL, bad)
	}
}
