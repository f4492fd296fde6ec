package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jcarver/rentroll/internal/task"
)

// maxAttachmentSize caps uploads at 20 MB.
const maxAttachmentSize = 20 << 20

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	opts := task.ListOptions{Status: task.Status(r.URL.Query().Get("status"))}

	var err error
	if opts.PropertyID, err = queryID(r, "propertyId"); err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if opts.UnitID, err = queryID(r, "unitId"); err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if opts.TenantID, err = queryID(r, "tenantId"); err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	tasks, err := s.tasks.List(opts)
	if err != nil {
		apiError(w, fmt.Sprintf("listing tasks: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, tasks, http.StatusOK)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var t task.Task
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	saved, err := s.tasks.Insert(&t)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	apiJSON(w, saved, http.StatusCreated)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := s.tasks.GetByID(id)
	if err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, t, http.StatusOK)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var t task.Task
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	t.ID = id

	updated, err := s.tasks.Update(&t)
	if err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, updated, http.StatusOK)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Unlink stored files before the rows cascade away.
	attachments, err := s.tasks.ListAttachments(id)
	if err == nil {
		for _, a := range attachments {
			_ = os.Remove(filepath.Join(s.dataDir, a.StoredName))
		}
	}

	if err := s.tasks.Delete(id); err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, map[string]interface{}{"id": id, "deleted": true}, http.StatusOK)
}

func (s *Server) getDraft(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	draft, err := s.drafts.Get(id)
	if err != nil {
		apiError(w, err.Error(), http.StatusNotFound)
		return
	}
	apiJSON(w, draft, http.StatusOK)
}

func (s *Server) saveDraft(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var changes map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	draft, err := s.drafts.Save(id, changes)
	if err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, draft, http.StatusOK)
}

func (s *Server) commitDraft(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := s.drafts.Commit(id)
	if err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, updated, http.StatusOK)
}

func (s *Server) discardDraft(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.drafts.Discard(id); err != nil {
		apiError(w, err.Error(), http.StatusNotFound)
		return
	}
	apiJSON(w, map[string]interface{}{"taskId": id, "discarded": true}, http.StatusOK)
}

func (s *Server) listAttachments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	attachments, err := s.tasks.ListAttachments(id)
	if err != nil {
		apiError(w, fmt.Sprintf("listing attachments: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, attachments, http.StatusOK)
}

// uploadAttachment stores a multipart file under a random name and
// records it against the task.
func (s *Server) uploadAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := s.tasks.GetByID(id); err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}

	if err := r.ParseMultipartForm(maxAttachmentSize); err != nil {
		apiError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apiError(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	storedName := uuid.NewString() + filepath.Ext(header.Filename)
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		apiError(w, "preparing storage", http.StatusInternalServerError)
		return
	}

	dst, err := os.Create(filepath.Join(s.dataDir, storedName))
	if err != nil {
		apiError(w, "storing file", http.StatusInternalServerError)
		return
	}
	size, err := io.Copy(dst, file)
	if closeErr := dst.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(filepath.Join(s.dataDir, storedName))
		apiError(w, "storing file", http.StatusInternalServerError)
		return
	}

	saved, err := s.tasks.AddAttachment(&task.Attachment{
		TaskID:      id,
		FileName:    header.Filename,
		StoredName:  storedName,
		ContentType: header.Header.Get("Content-Type"),
		SizeBytes:   size,
	})
	if err != nil {
		_ = os.Remove(filepath.Join(s.dataDir, storedName))
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	apiJSON(w, saved, http.StatusCreated)
}

func (s *Server) downloadAttachment(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	attachmentID, err := pathID(r, "attachmentId")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	attachments, err := s.tasks.ListAttachments(taskID)
	if err != nil {
		apiError(w, fmt.Sprintf("listing attachments: %v", err), http.StatusInternalServerError)
		return
	}

	for _, a := range attachments {
		if a.ID != attachmentID {
			continue
		}
		if a.ContentType != "" {
			w.Header().Set("Content-Type", a.ContentType)
		}
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.FileName))
		http.ServeFile(w, r, filepath.Join(s.dataDir, a.StoredName))
		return
	}

	apiError(w, fmt.Sprintf("attachment %d not found", attachmentID), http.StatusNotFound)
}

func (s *Server) deleteAttachment(w http.ResponseWriter, r *http.Request) {
	if _, err := pathID(r, "id"); err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	attachmentID, err := pathID(r, "attachmentId")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	storedName, err := s.tasks.DeleteAttachment(attachmentID)
	if err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	_ = os.Remove(filepath.Join(s.dataDir, storedName))

	apiJSON(w, map[string]interface{}{"id": attachmentID, "deleted": true}, http.StatusOK)
}

func (s *Server) listCommunications(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	comms, err := s.comms.ListByTask(id)
	if err != nil {
		apiError(w, fmt.Sprintf("listing communications: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, comms, http.StatusOK)
}

// sendCommunication records the message, then attempts delivery. The
// record is returned immediately with its current status; failures
// land on the record, not the response.
func (s *Server) sendCommunication(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := s.tasks.GetByID(id); err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}

	var c task.Communication
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	c.TaskID = id

	saved, err := s.comms.Add(&c)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.dispatcher.Dispatch(saved)
	if refreshed, err := s.comms.GetByID(saved.ID); err == nil {
		saved = refreshed
	}

	apiJSON(w, saved, http.StatusCreated)
}
