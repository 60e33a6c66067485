package repositories

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"corteBack/internal/models"
)

type AppointmentRepository struct {
	Client *firestore.Client
}

func (r *AppointmentRepository) query(userID string) firestore.Query {
	return r.Client.Collection(appointmentsCollection).Where("userId", "==", userID)
}

func (r *AppointmentRepository) CreateAppointment(ctx context.Context, appt models.Appointment) (models.Appointment, error) {
	ref, _, err := r.Client.Collection(appointmentsCollection).Add(ctx, appt)
	if err != nil {
		return models.Appointment{}, err
	}
	appt.ID = ref.ID
	return appt, nil
}

func (r *AppointmentRepository) GetAppointmentsByUserID(ctx context.Context, userID string) ([]models.Appointment, error) {
	return decodeAppointments(r.query(userID).Documents(ctx))
}

func (r *AppointmentRepository) DeleteAppointment(ctx context.Context, userID, id string) error {
	ref := r.Client.Collection(appointmentsCollection).Doc(id)
	doc, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return models.ErrRecordNotFound
	}
	if err != nil {
		return err
	}

	var appt models.Appointment
	if err := doc.DataTo(&appt); err != nil {
		return err
	}
	if appt.UserID != userID {
		return models.ErrNotOwner
	}

	_, err = ref.Delete(ctx)
	return err
}

// WatchAppointments delivers the owner's full appointment list on every remote
// change until the returned Unsubscribe is called.
func (r *AppointmentRepository) WatchAppointments(ctx context.Context, userID string, onUpdate func([]models.Appointment)) Unsubscribe {
	wctx, cancel := context.WithCancel(ctx)
	guard := newWatchGuard(cancel)
	snaps := r.query(userID).Snapshots(wctx)

	go func() {
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				return
			}
			list, err := decodeAppointments(snap.Documents)
			if err != nil {
				continue
			}
			guard.deliver(func() { onUpdate(list) })
		}
	}()

	return guard.unsubscribe()
}

func decodeAppointments(it *firestore.DocumentIterator) ([]models.Appointment, error) {
	appts := []models.Appointment{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var appt models.Appointment
		if err := doc.DataTo(&appt); err != nil {
			return nil, err
		}
		appt.ID = doc.Ref.ID
		appts = append(appts, appt)
	}
	return appts, nil
}
