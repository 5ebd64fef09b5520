package app

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"enscal/internal/domain/event"
	"enscal/internal/domain/member"
	idb "enscal/internal/infra/database"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeEventRepo struct {
	events map[int64]event.CalendarEvent
	nextID int64
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[int64]event.CalendarEvent)}
}

func (r *fakeEventRepo) Create(_ context.Context, e *event.CalendarEvent) error {
	r.nextID++
	e.ID = r.nextID
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	r.events[e.ID] = *e
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id int64) (*event.CalendarEvent, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, idb.ErrEventNotFound
	}
	copied := e
	return &copied, nil
}

func (r *fakeEventRepo) Update(_ context.Context, e *event.CalendarEvent) error {
	if _, ok := r.events[e.ID]; !ok {
		return idb.ErrEventNotFound
	}
	e.UpdatedAt = time.Now()
	r.events[e.ID] = *e
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.events[id]; !ok {
		return idb.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *fakeEventRepo) ListInRange(_ context.Context, start, end time.Time) ([]event.CalendarEvent, error) {
	out := make([]event.CalendarEvent, 0)
	for _, e := range r.events {
		if !e.StartDate.After(end) && !e.EndDate.Before(start) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeDirectory struct {
	members []member.Member
	couples []member.Couple
}

func (d *fakeDirectory) GetMemberByID(_ context.Context, id int64) (*member.Member, error) {
	for _, m := range d.members {
		if m.ID == id {
			copied := m
			return &copied, nil
		}
	}
	return nil, idb.ErrMemberNotFound
}

func (d *fakeDirectory) ListActiveMembers(_ context.Context) ([]member.Member, error) {
	return d.members, nil
}

func (d *fakeDirectory) ListActiveCouples(_ context.Context) ([]member.Couple, error) {
	return d.couples, nil
}
