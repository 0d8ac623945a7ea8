package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"regform/internal/registration/app"
	"regform/internal/registration/domain/entities"
	"regform/internal/registration/domain/services"
	"regform/internal/registration/metrics"
)

var testCountries = []entities.Country{
	{Code: "PL", Name: "Poland", FlagURL: "https://flagcdn.com/w320/pl.png"},
	{Code: "DE", Name: "Germany", FlagURL: "https://flagcdn.com/w320/de.png"},
}

func completeDraft() entities.Draft {
	return entities.Draft{
		FirstName:               "Ann",
		LastName:                "Lee",
		Email:                   "a@b.com",
		Password:                "password1",
		ConfirmPassword:         "password1",
		Age:                     "30",
		BirthDate:               "1990-01-01",
		Country:                 "PL",
		TermsOfServiceAgreement: true,
	}
}

func fill(t *testing.T, form *app.Form, d entities.Draft) {
	t.Helper()
	ctx := context.Background()

	values := map[string]any{
		entities.FieldFirstName:               d.FirstName,
		entities.FieldLastName:                d.LastName,
		entities.FieldEmail:                   d.Email,
		entities.FieldPassword:                d.Password,
		entities.FieldConfirmPassword:         d.ConfirmPassword,
		entities.FieldAge:                     d.Age,
		entities.FieldBirthDate:               d.BirthDate,
		entities.FieldGender:                  string(d.Gender),
		entities.FieldMarketingAgreement:      d.MarketingAgreement,
		entities.FieldTermsOfServiceAgreement: d.TermsOfServiceAgreement,
	}
	for name, value := range values {
		require.NoError(t, form.SetField(ctx, name, value), name)
	}
	if d.Country != "" {
		require.NoError(t, form.SetField(ctx, entities.FieldCountry, d.Country))
	}
}

func newLoadedForm(t *testing.T, submitter *mockSubmitter, notifier *recordingNotifier, opts ...app.Option) *app.Form {
	t.Helper()

	source := &mockCountrySource{}
	source.On("FetchCountries", mock.Anything).Return(testCountries, nil).Once()

	form := app.NewForm(source, submitter, notifier, opts...)
	form.Init(context.Background())
	require.Equal(t, entities.ListLoaded, form.Countries().State)
	return form
}

func TestForm_InitialState(t *testing.T) {
	form := app.NewForm(&mockCountrySource{}, &mockSubmitter{}, &recordingNotifier{})

	snap := form.Snapshot()
	assert.Equal(t, entities.Draft{}, snap.Draft)
	assert.True(t, snap.Errors.Valid())
	assert.False(t, snap.Submitting)
	assert.Equal(t, entities.ListPending, form.Countries().State)
	assert.Empty(t, form.Countries().Countries)
}

func TestForm_InitFetchesExactlyOnce(t *testing.T) {
	source := &mockCountrySource{}
	source.On("FetchCountries", mock.Anything).Return(testCountries, nil).Once()
	form := app.NewForm(source, &mockSubmitter{}, &recordingNotifier{})

	form.Init(context.Background())
	form.Init(context.Background())

	select {
	case <-form.Ready():
	default:
		t.Fatal("Ready must be closed after Init")
	}
	source.AssertNumberOfCalls(t, "FetchCountries", 1)
	view := form.Countries()
	assert.Equal(t, entities.ListLoaded, view.State)
	assert.Equal(t, testCountries, view.Countries)
}

func TestForm_SetFieldClearsOnlyThatFieldError(t *testing.T) {
	form := newLoadedForm(t, &mockSubmitter{}, &recordingNotifier{})
	ctx := context.Background()

	result, err := form.Submit(ctx)
	require.NoError(t, err)
	require.Equal(t, app.SubmitInvalid, result.Status)
	before := form.Snapshot().Errors
	require.True(t, before.Has(entities.FieldFirstName))
	require.True(t, before.Has(entities.FieldEmail))

	require.NoError(t, form.SetField(ctx, entities.FieldFirstName, "A"))

	after := form.Snapshot().Errors
	assert.False(t, after.Has(entities.FieldFirstName), "edited field error is cleared even if still invalid")
	assert.True(t, after.Has(entities.FieldEmail))
	assert.Len(t, after, len(before)-1)
}

func TestForm_SetFieldRejectsInvalidInput(t *testing.T) {
	form := newLoadedForm(t, &mockSubmitter{}, &recordingNotifier{})
	ctx := context.Background()

	assert.ErrorIs(t, form.SetField(ctx, "nickname", "x"), entities.ErrUnknownField)
	assert.ErrorIs(t, form.SetField(ctx, entities.FieldTermsOfServiceAgreement, "yes"), entities.ErrInvalidFieldValue)
	assert.ErrorIs(t, form.SetField(ctx, entities.FieldCountry, "FR"), app.ErrCountryNotSelectable)
	assert.Equal(t, entities.Draft{}, form.Snapshot().Draft)

	require.NoError(t, form.SetField(ctx, entities.FieldCountry, "DE"))
	require.NoError(t, form.SetField(ctx, entities.FieldCountry, ""))
	assert.Empty(t, form.Snapshot().Draft.Country)
}

func TestForm_CountryNotSelectableBeforeLoad(t *testing.T) {
	form := app.NewForm(&mockCountrySource{}, &mockSubmitter{}, &recordingNotifier{})

	err := form.SetField(context.Background(), entities.FieldCountry, "PL")

	assert.ErrorIs(t, err, app.ErrCountryNotSelectable)
}

func TestForm_ValidDraftIsSubmitted(t *testing.T) {
	submitter := &mockSubmitter{}
	submitter.On("Submit", mock.Anything, completeDraft()).Return(nil).Once()
	notifier := &recordingNotifier{}
	form := newLoadedForm(t, submitter, notifier)
	fill(t, form, completeDraft())

	result, err := form.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, app.SubmitSucceeded, result.Status)
	assert.True(t, result.Errors.Valid())
	require.NotNil(t, result.Notification)
	assert.Equal(t, entities.NotificationSuccess, result.Notification.Kind)
	assert.Equal(t, app.MsgSubmitSucceeded, result.Notification.Message)
	assert.Equal(t, []entities.Notification{*result.Notification}, notifier.All())
	assert.False(t, form.Snapshot().Submitting)
	assert.True(t, form.Snapshot().Errors.Valid())
	submitter.AssertExpectations(t)
}

func TestForm_MissingTermsBlocksSubmission(t *testing.T) {
	submitter := &mockSubmitter{}
	notifier := &recordingNotifier{}
	form := newLoadedForm(t, submitter, notifier)
	d := completeDraft()
	d.TermsOfServiceAgreement = false
	fill(t, form, d)

	result, err := form.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, app.SubmitInvalid, result.Status)
	assert.Equal(t, entities.ErrorMap{entities.FieldTermsOfServiceAgreement: services.MsgTermsOfService}, result.Errors)
	assert.Equal(t, result.Errors, form.Snapshot().Errors)
	assert.Nil(t, result.Notification)
	assert.Empty(t, notifier.All())
	assert.False(t, form.Snapshot().Submitting)
	submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestForm_CountryFetchFailureLeavesCountryUnselectable(t *testing.T) {
	source := &mockCountrySource{}
	source.On("FetchCountries", mock.Anything).Return(nil, errors.New("dial tcp: connection refused")).Once()
	submitter := &mockSubmitter{}
	notifier := &recordingNotifier{}
	form := app.NewForm(source, submitter, notifier)

	form.Init(context.Background())

	view := form.Countries()
	assert.Equal(t, entities.ListFailed, view.State)
	assert.Empty(t, view.Countries)

	d := completeDraft()
	d.Country = ""
	fill(t, form, d)
	assert.ErrorIs(t, form.SetField(context.Background(), entities.FieldCountry, "PL"), app.ErrCountryNotSelectable)

	result, err := form.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, app.SubmitInvalid, result.Status)
	assert.Equal(t, entities.ErrorMap{entities.FieldCountry: services.MsgCountry}, result.Errors)
	assert.Empty(t, notifier.All(), "country fetch failure has no user-facing message")
	submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestForm_SubmitFailureNotifiesGenericMessage(t *testing.T) {
	for name, cause := range map[string]error{
		"network error":   errors.New("connection reset"),
		"server rejected": errors.New("unexpected status 500"),
	} {
		t.Run(name, func(t *testing.T) {
			submitter := &mockSubmitter{}
			submitter.On("Submit", mock.Anything, completeDraft()).Return(cause).Once()
			notifier := &recordingNotifier{}
			form := newLoadedForm(t, submitter, notifier)
			fill(t, form, completeDraft())

			result, err := form.Submit(context.Background())

			require.NoError(t, err)
			assert.Equal(t, app.SubmitFailed, result.Status)
			require.NotNil(t, result.Notification)
			assert.Equal(t, entities.Notification{Kind: entities.NotificationFailure, Message: app.MsgSubmitFailed},
				*result.Notification)
			assert.NotContains(t, result.Notification.Message, cause.Error())
			assert.Len(t, notifier.All(), 1)
			assert.False(t, form.Snapshot().Submitting)
			submitter.AssertNumberOfCalls(t, "Submit", 1)
		})
	}
}

func TestForm_ManualResubmitAfterFailure(t *testing.T) {
	submitter := &mockSubmitter{}
	submitter.On("Submit", mock.Anything, completeDraft()).Return(errors.New("timeout")).Once()
	submitter.On("Submit", mock.Anything, completeDraft()).Return(nil).Once()
	form := newLoadedForm(t, submitter, &recordingNotifier{})
	fill(t, form, completeDraft())

	first, err := form.Submit(context.Background())
	require.NoError(t, err)
	second, err := form.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, app.SubmitFailed, first.Status)
	assert.Equal(t, app.SubmitSucceeded, second.Status)
	submitter.AssertNumberOfCalls(t, "Submit", 2)
}

func TestForm_RejectsConcurrentSubmission(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	submitter := &mockSubmitter{}
	submitter.On("Submit", mock.Anything, completeDraft()).Run(func(mock.Arguments) {
		close(entered)
		<-release
	}).Return(nil).Once()
	form := newLoadedForm(t, submitter, &recordingNotifier{})
	fill(t, form, completeDraft())

	done := make(chan *app.SubmitResult)
	go func() {
		result, err := form.Submit(context.Background())
		assert.NoError(t, err)
		done <- result
	}()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("submit call was not issued")
	}
	assert.True(t, form.Snapshot().Submitting)

	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, app.ErrSubmissionInProgress)

	close(release)
	select {
	case result := <-done:
		assert.Equal(t, app.SubmitSucceeded, result.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("first submission did not finish")
	}
	assert.False(t, form.Snapshot().Submitting)
	submitter.AssertNumberOfCalls(t, "Submit", 1)
}

func TestForm_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	submitter := &mockSubmitter{}
	submitter.On("Submit", mock.Anything, completeDraft()).Return(nil).Once()
	form := newLoadedForm(t, submitter, &recordingNotifier{}, app.WithMetrics(m))

	_, err := form.Submit(context.Background())
	require.NoError(t, err)
	fill(t, form, completeDraft())
	_, err = form.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues(metrics.OutcomeInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues(metrics.OutcomeSucceeded)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationErrors.WithLabelValues(entities.FieldEmail)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CountryLoads.WithLabelValues("loaded")))
}
