package quizshow

import "sync"

// QuestionPool is the FIFO of drafts waiting for the checker
type QuestionPool struct {
	mu        sync.RWMutex
	questions map[string]*Question
	queue     []string // keys, oldest first
}

func NewQuestionPool() *QuestionPool {
	return &QuestionPool{
		questions: make(map[string]*Question),
	}
}

// Add queues question. A revised question replaces its earlier draft and
// moves to the back.
func (qp *QuestionPool) Add(question *Question) {
	qp.mu.Lock()
	defer qp.mu.Unlock()

	if question.Status == "" {
		question.Status = StatusTentative
	}
	if _, ok := qp.questions[question.Key]; ok {
		qp.removeLocked(question.Key)
	}
	qp.questions[question.Key] = question
	qp.queue = append(qp.queue, question.Key)
}

// Get pops the oldest question, or nil when the pool is empty
func (qp *QuestionPool) Get() *Question {
	qp.mu.Lock()
	defer qp.mu.Unlock()

	if len(qp.queue) == 0 {
		return nil
	}

	key := qp.queue[0]
	qp.queue = qp.queue[1:]

	question := qp.questions[key]
	delete(qp.questions, key)
	return question
}

func (qp *QuestionPool) Remove(key string) {
	qp.mu.Lock()
	defer qp.mu.Unlock()
	qp.removeLocked(key)
}

func (qp *QuestionPool) removeLocked(key string) {
	delete(qp.questions, key)
	for i, k := range qp.queue {
		if k == key {
			qp.queue = append(qp.queue[:i], qp.queue[i+1:]...)
			break
		}
	}
}

func (qp *QuestionPool) Size() int {
	qp.mu.RLock()
	defer qp.mu.RUnlock()
	return len(qp.queue)
}

func (qp *QuestionPool) IsEmpty() bool {
	return qp.Size() == 0
}
