package services

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"answerhub/internal/models"
	"answerhub/internal/repositories"
)

// In-memory repository fakes backing the service tests. They implement
// the same contracts as the SQL repositories, including the (nil, nil)
// not-found convention.

// ===============================
// QUESTIONS
// ===============================

type fakeQuestionRepo struct {
	nextID    int64
	questions map[int64]*models.Question
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[int64]*models.Question)}
}

func (f *fakeQuestionRepo) Create(_ context.Context, q *models.Question, tagNames []string) error {
	f.nextID++
	q.ID = f.nextID
	q.CreatedAt = time.Now()
	q.Tags = append([]string(nil), tagNames...)
	f.questions[q.ID] = q
	return nil
}

func (f *fakeQuestionRepo) GetByID(_ context.Context, id int64) (*models.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, nil
	}
	copied := *q
	return &copied, nil
}

func (f *fakeQuestionRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.questions[id]
	return ok, nil
}

func (f *fakeQuestionRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.questions[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.questions, id)
	return nil
}

func (f *fakeQuestionRepo) List(_ context.Context, params models.PaginationParams, tag, search string) (*models.PaginatedResponse[*models.Question], error) {
	var items []*models.Question
	for _, q := range f.questions {
		items = append(items, q)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return models.NewPaginatedResponse(items, params, int64(len(items))), nil
}

func (f *fakeQuestionRepo) GetByUserID(_ context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Question], error) {
	var items []*models.Question
	for _, q := range f.questions {
		if q.UserID == userID {
			items = append(items, q)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return models.NewPaginatedResponse(items, params, int64(len(items))), nil
}

func (f *fakeQuestionRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.questions)), nil
}

func (f *fakeQuestionRepo) CountUnanswered(_ context.Context) (int64, error) {
	return 0, nil
}

// ===============================
// ANSWERS
// ===============================

type fakeAnswerRepo struct {
	nextID int64
	// order preserves insertion order, matching the SQL repository's
	// id-ordered scans.
	order   []int64
	answers map[int64]*models.Answer
}

func newFakeAnswerRepo() *fakeAnswerRepo {
	return &fakeAnswerRepo{answers: make(map[int64]*models.Answer)}
}

func (f *fakeAnswerRepo) Create(_ context.Context, a *models.Answer) error {
	f.nextID++
	a.ID = f.nextID
	a.CreatedAt = time.Now()
	f.answers[a.ID] = a
	f.order = append(f.order, a.ID)
	return nil
}

func (f *fakeAnswerRepo) GetByID(_ context.Context, id int64) (*models.Answer, error) {
	a, ok := f.answers[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAnswerRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.answers[id]
	return ok, nil
}

func (f *fakeAnswerRepo) GetByQuestionID(_ context.Context, questionID int64) ([]*models.Answer, error) {
	var items []*models.Answer
	for _, id := range f.order {
		a := f.answers[id]
		if a.QuestionID == questionID {
			copied := *a
			items = append(items, &copied)
		}
	}
	return items, nil
}

func (f *fakeAnswerRepo) GetByUserID(_ context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Answer], error) {
	var items []*models.Answer
	for _, id := range f.order {
		a := f.answers[id]
		if a.UserID == userID {
			copied := *a
			items = append(items, &copied)
		}
	}
	return models.NewPaginatedResponse(items, params, int64(len(items))), nil
}

func (f *fakeAnswerRepo) AcceptExclusive(_ context.Context, questionID, answerID int64) error {
	target, ok := f.answers[answerID]
	if !ok || target.QuestionID != questionID {
		return sql.ErrNoRows
	}
	for _, a := range f.answers {
		if a.QuestionID == questionID {
			a.IsAccepted = false
		}
	}
	target.IsAccepted = true
	return nil
}

func (f *fakeAnswerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.answers)), nil
}

func (f *fakeAnswerRepo) CountAccepted(_ context.Context) (int64, error) {
	var n int64
	for _, a := range f.answers {
		if a.IsAccepted {
			n++
		}
	}
	return n, nil
}

// acceptedFor returns the IDs of accepted answers for the question.
func (f *fakeAnswerRepo) acceptedFor(questionID int64) []int64 {
	var ids []int64
	for _, id := range f.order {
		a := f.answers[id]
		if a.QuestionID == questionID && a.IsAccepted {
			ids = append(ids, id)
		}
	}
	return ids
}

// ===============================
// VOTES
// ===============================

type voteKey struct {
	userID int64
	kind   models.VoteTargetKind
	id     int64
}

type fakeVoteRepo struct {
	nextID int64
	votes  map[voteKey]*models.Vote
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{votes: make(map[voteKey]*models.Vote)}
}

func (f *fakeVoteRepo) Upsert(_ context.Context, vote *models.Vote) error {
	if err := vote.Target.Validate(); err != nil {
		return err
	}
	key := voteKey{userID: vote.UserID, kind: vote.Target.Kind, id: vote.Target.ID}
	if existing, ok := f.votes[key]; ok {
		existing.Value = vote.Value
		existing.UpdatedAt = time.Now()
		vote.ID = existing.ID
		return nil
	}
	f.nextID++
	vote.ID = f.nextID
	vote.CreatedAt = time.Now()
	vote.UpdatedAt = vote.CreatedAt
	copied := *vote
	f.votes[key] = &copied
	return nil
}

func (f *fakeVoteRepo) GetByUserAndTarget(_ context.Context, userID int64, target models.VoteTarget) (*models.Vote, error) {
	v, ok := f.votes[voteKey{userID: userID, kind: target.Kind, id: target.ID}]
	if !ok {
		return nil, nil
	}
	copied := *v
	return &copied, nil
}

func (f *fakeVoteRepo) SumForTarget(_ context.Context, target models.VoteTarget) (int, error) {
	sum := 0
	for key, v := range f.votes {
		if key.kind == target.Kind && key.id == target.ID {
			sum += v.Value
		}
	}
	return sum, nil
}

// rowCount reports how many vote rows exist for the target.
func (f *fakeVoteRepo) rowCount(target models.VoteTarget) int {
	n := 0
	for key := range f.votes {
		if key.kind == target.Kind && key.id == target.ID {
			n++
		}
	}
	return n
}

// ===============================
// USERS
// ===============================

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*models.User
	counts map[int64]repositories.UserActivityCounts
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[int64]*models.User),
		counts: make(map[int64]repositories.UserActivityCounts),
	}
}

func (f *fakeUserRepo) addUser(user *models.User) *models.User {
	f.nextID++
	user.ID = f.nextID
	if user.Reputation == 0 {
		user.Reputation = 1
	}
	if user.BadgeTier == "" {
		user.BadgeTier = models.TierBeginner
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.addUser(user)
	user.CreatedAt = time.Now()
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List(_ context.Context, params models.PaginationParams, search string) (*models.PaginatedResponse[*models.User], error) {
	var items []*models.User
	for _, u := range f.users {
		items = append(items, u)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return models.NewPaginatedResponse(items, params, int64(len(items))), nil
}

func (f *fakeUserRepo) GetActivityCounts(_ context.Context, userID int64) (*repositories.UserActivityCounts, error) {
	counts := f.counts[userID]
	return &counts, nil
}

func (f *fakeUserRepo) UpdateReputation(_ context.Context, userID int64, score int, tier models.BadgeTier) error {
	u, ok := f.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.Reputation = score
	u.BadgeTier = tier
	return nil
}

func (f *fakeUserRepo) IncrementProfileViews(_ context.Context, userID int64) error {
	if u, ok := f.users[userID]; ok {
		u.ProfileViews++
	}
	return nil
}

func (f *fakeUserRepo) GetLeaderboard(_ context.Context, limit int) ([]*models.User, error) {
	var items []*models.User
	for _, u := range f.users {
		copied := *u
		items = append(items, &copied)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Reputation > items[j].Reputation })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

// ===============================
// BADGES
// ===============================

type fakeBadgeRepo struct {
	badges  []*models.Badge
	awarded map[int64]map[int64]bool
}

func newFakeBadgeRepo(badges ...*models.Badge) *fakeBadgeRepo {
	return &fakeBadgeRepo{
		badges:  badges,
		awarded: make(map[int64]map[int64]bool),
	}
}

func (f *fakeBadgeRepo) List(_ context.Context) ([]*models.Badge, error) {
	return f.badges, nil
}

func (f *fakeBadgeRepo) GetUserBadges(_ context.Context, userID int64) ([]*models.UserBadge, error) {
	var result []*models.UserBadge
	for _, b := range f.badges {
		if f.awarded[userID][b.ID] {
			result = append(result, &models.UserBadge{
				UserID:  userID,
				BadgeID: b.ID,
				Name:    b.Name,
			})
		}
	}
	return result, nil
}

func (f *fakeBadgeRepo) Award(_ context.Context, userID, badgeID int64) (bool, error) {
	if f.awarded[userID] == nil {
		f.awarded[userID] = make(map[int64]bool)
	}
	if f.awarded[userID][badgeID] {
		return false, nil
	}
	f.awarded[userID][badgeID] = true
	return true, nil
}

func (f *fakeBadgeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.badges)), nil
}

func (f *fakeBadgeRepo) CountAwarded(_ context.Context) (int64, error) {
	var n int64
	for _, byBadge := range f.awarded {
		n += int64(len(byBadge))
	}
	return n, nil
}

// ===============================
// SESSIONS
// ===============================

type fakeSessionRepo struct {
	nextID   int64
	sessions map[string]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *models.Session) error {
	f.nextID++
	session.ID = f.nextID
	session.CreatedAt = time.Now()
	copied := *session
	f.sessions[session.SessionToken] = &copied
	return nil
}

func (f *fakeSessionRepo) GetByToken(_ context.Context, token string) (*models.Session, error) {
	s, ok := f.sessions[token]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSessionRepo) DeleteByToken(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	var n int64
	for token, s := range f.sessions {
		if s.IsExpired() {
			delete(f.sessions, token)
			n++
		}
	}
	return n, nil
}
