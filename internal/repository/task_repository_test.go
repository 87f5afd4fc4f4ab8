package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"todocli/internal/model"
	"todocli/internal/repository"
)

func newTestRepo(t *testing.T) *repository.TaskRepository {
	t.Helper()

	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	return repository.NewTaskRepository(db)
}

func seedTask(t *testing.T, repo *repository.TaskRepository, task model.Task) *model.Task {
	t.Helper()

	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if task.RecurrenceInterval == "" {
		task.RecurrenceInterval = model.RecurrenceNone
	}
	require.NoError(t, repo.Create(context.Background(), &task))
	require.NotZero(t, task.ID)

	return &task
}

func TestCreateAndFindByID(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	repo := newTestRepo(t)
	ctx := context.Background()

	due := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	created := seedTask(t, repo, model.Task{
		Title:              "pay rent",
		Description:        "transfer before the 3rd",
		Priority:           model.PriorityHigh,
		Category:           "finance",
		DueDate:            &due,
		RecurrenceInterval: model.RecurrenceMonthly,
	})

	found, err := repo.FindByID(ctx, created.ID)
	assert.NoError(err)
	assert.Equal("pay rent", found.Title)
	assert.Equal(model.PriorityHigh, found.Priority)
	assert.Equal(model.RecurrenceMonthly, found.RecurrenceInterval)
	assert.Equal(model.StatusPending, found.Status())
	assert.False(found.ReminderSent)
	assert.NotNil(found.DueDate)
	assert.False(found.CreatedAt.IsZero())
}

func TestFindByIDMissing(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)

	_, err := repo.FindByID(context.Background(), 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdatePartialFields(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	repo := newTestRepo(t)
	ctx := context.Background()

	task := seedTask(t, repo, model.Task{Title: "water plants", Category: "home"})

	title := "water all plants"
	updated, err := repo.Update(ctx, task.ID, model.TaskUpdate{Title: &title})
	assert.NoError(err)
	assert.Equal("water all plants", updated.Title)
	// Untouched fields survive.
	assert.Equal("home", updated.Category)
	assert.Equal(model.PriorityMedium, updated.Priority)
}

func TestUpdateDueDateResetsReminderSent(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	repo := newTestRepo(t)
	ctx := context.Background()

	due := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	task := seedTask(t, repo, model.Task{Title: "standup", DueDate: &due})

	require.NoError(t, repo.MarkReminderSent(ctx, task.ID))
	marked, err := repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	require.True(t, marked.ReminderSent)

	newDue := due.AddDate(0, 0, 1)
	updated, err := repo.Update(ctx, task.ID, model.TaskUpdate{DueDate: &newDue})
	assert.NoError(err)
	assert.False(updated.ReminderSent)

	// An explicit ReminderSent in the same update wins over the reset.
	sent := true
	laterDue := due.AddDate(0, 0, 2)
	updated, err = repo.Update(ctx, task.ID, model.TaskUpdate{DueDate: &laterDue, ReminderSent: &sent})
	assert.NoError(err)
	assert.True(updated.ReminderSent)
}

func TestUpdateMissingTask(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)

	title := "nope"
	_, err := repo.Update(context.Background(), 999, model.TaskUpdate{Title: &title})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	repo := newTestRepo(t)
	ctx := context.Background()

	task := seedTask(t, repo, model.Task{Title: "temp"})

	deleted, err := repo.Delete(ctx, task.ID)
	assert.NoError(err)
	assert.True(deleted)

	deleted, err = repo.Delete(ctx, task.ID)
	assert.NoError(err)
	assert.False(deleted)
}

func TestListFilters(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	repo := newTestRepo(t)
	ctx := context.Background()

	seedTask(t, repo, model.Task{Title: "a", Category: "work", Priority: model.PriorityHigh})
	seedTask(t, repo, model.Task{Title: "b", Category: "home", Priority: model.PriorityLow})
	done := seedTask(t, repo, model.Task{Title: "c", Category: "work"})

	completed := model.StatusCompleted
	_, err := repo.Update(ctx, done.ID, model.TaskUpdate{Status: &completed})
	require.NoError(t, err)

	tasks, err := repo.List(ctx, model.Filter{Category: "work"}, model.SortByDate)
	assert.NoError(err)
	assert.Len(tasks, 2)

	pending := model.StatusPending
	tasks, err = repo.List(ctx, model.Filter{Status: &pending, Category: "work"}, model.SortByDate)
	assert.NoError(err)
	assert.Len(tasks, 1)
	assert.Equal("a", tasks[0].Title)

	high := model.PriorityHigh
	tasks, err = repo.List(ctx, model.Filter{Priority: &high}, model.SortByDate)
	assert.NoError(err)
	assert.Len(tasks, 1)
	assert.Equal("a", tasks[0].Title)
}

func TestListDueWindowFilters(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	repo := newTestRepo(t)
	ctx := context.Background()

	early := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	late := time.Date(2024, time.June, 20, 9, 0, 0, 0, time.UTC)
	seedTask(t, repo, model.Task{Title: "early", DueDate: &early})
	seedTask(t, repo, model.Task{Title: "late", DueDate: &late})
	seedTask(t, repo, model.Task{Title: "undated"})

	cutoff := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	tasks, err := repo.List(ctx, model.Filter{DueBefore: &cutoff}, model.SortByDate)
	assert.NoError(err)
	assert.Len(tasks, 1)
	assert.Equal("early", tasks[0].Title)

	tasks, err = repo.List(ctx, model.Filter{DueAfter: &cutoff}, model.SortByDate)
	assert.NoError(err)
	assert.Len(tasks, 1)
	assert.Equal("late", tasks[0].Title)
}

func TestListSortOrders(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	repo := newTestRepo(t)
	ctx := context.Background()

	dueLate := time.Date(2024, time.July, 1, 9, 0, 0, 0, time.UTC)
	dueEarly := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	seedTask(t, repo, model.Task{Title: "banana", Priority: model.PriorityLow, DueDate: &dueLate})
	seedTask(t, repo, model.Task{Title: "apple", Priority: model.PriorityHigh, DueDate: &dueEarly})
	seedTask(t, repo, model.Task{Title: "cherry", Priority: model.PriorityMedium})

	tasks, err := repo.List(ctx, model.Filter{}, model.SortByAlpha)
	assert.NoError(err)
	assert.Equal([]string{"apple", "banana", "cherry"}, titles(tasks))

	tasks, err = repo.List(ctx, model.Filter{}, model.SortByPriority)
	assert.NoError(err)
	assert.Equal([]string{"apple", "cherry", "banana"}, titles(tasks))

	// Date sort: dated tasks ascending, undated last.
	tasks, err = repo.List(ctx, model.Filter{}, model.SortByDate)
	assert.NoError(err)
	assert.Equal([]string{"apple", "banana", "cherry"}, titles(tasks))
}

func titles(tasks []model.Task) []string {
	result := make([]string, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, task.Title)
	}
	return result
}

func TestSearch(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	repo := newTestRepo(t)
	ctx := context.Background()

	seedTask(t, repo, model.Task{Title: "Buy groceries", Description: "milk and eggs"})
	seedTask(t, repo, model.Task{Title: "Call dentist", Description: "reschedule"})

	tasks, err := repo.Search(ctx, "groceries")
	assert.NoError(err)
	assert.Len(tasks, 1)

	// Matches descriptions too, case-insensitively.
	tasks, err = repo.Search(ctx, "MILK")
	assert.NoError(err)
	assert.Len(tasks, 1)
	assert.Equal("Buy groceries", tasks[0].Title)

	tasks, err = repo.Search(ctx, "nothing here")
	assert.NoError(err)
	assert.Empty(tasks)
}

func TestHistoryOneHop(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	repo := newTestRepo(t)
	ctx := context.Background()

	root := seedTask(t, repo, model.Task{Title: "report"})
	time.Sleep(5 * time.Millisecond)
	child1 := seedTask(t, repo, model.Task{Title: "report", ParentTaskID: &root.ID})
	time.Sleep(5 * time.Millisecond)
	child2 := seedTask(t, repo, model.Task{Title: "report", ParentTaskID: &root.ID})
	time.Sleep(5 * time.Millisecond)
	// Grandchild: parented to child1, not the root. One-hop query excludes it.
	seedTask(t, repo, model.Task{Title: "report", ParentTaskID: &child1.ID})

	tasks, err := repo.History(ctx, root.ID)
	assert.NoError(err)
	assert.Len(tasks, 3)
	assert.Equal(root.ID, tasks[0].ID)
	assert.Equal(child1.ID, tasks[1].ID)
	assert.Equal(child2.ID, tasks[2].ID)
}

func TestHistoryMissingRoot(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)

	tasks, err := repo.History(context.Background(), 999)
	assert.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestDueSoon(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	repo := newTestRepo(t)
	ctx := context.Background()

	now := time.Now()
	in10 := now.Add(10 * time.Minute)
	in2h := now.Add(2 * time.Hour)
	past := now.Add(-time.Hour)

	soon := seedTask(t, repo, model.Task{Title: "soon", DueDate: &in10})
	seedTask(t, repo, model.Task{Title: "later", DueDate: &in2h})
	seedTask(t, repo, model.Task{Title: "overdue", DueDate: &past})
	seedTask(t, repo, model.Task{Title: "undated"})

	tasks, err := repo.DueSoon(ctx, now, 30*time.Minute)
	assert.NoError(err)
	assert.Len(tasks, 1)
	assert.Equal("soon", tasks[0].Title)

	// Already-notified tasks are excluded.
	require.NoError(t, repo.MarkReminderSent(ctx, soon.ID))
	tasks, err = repo.DueSoon(ctx, now, 30*time.Minute)
	assert.NoError(err)
	assert.Empty(tasks)
}

func TestListCategories(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	repo := newTestRepo(t)
	ctx := context.Background()

	seedTask(t, repo, model.Task{Title: "a", Category: "work"})
	seedTask(t, repo, model.Task{Title: "b", Category: "home"})
	seedTask(t, repo, model.Task{Title: "c", Category: "work"})
	seedTask(t, repo, model.Task{Title: "d"})

	categories, err := repo.ListCategories(ctx)
	assert.NoError(err)
	assert.Equal([]string{"home", "work"}, categories)
}
