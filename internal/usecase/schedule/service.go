package schedule

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Job — запланированная работа с собственным правилом перепланирования.
type Job struct {
	Name string
	Run  func(ctx context.Context) error

	next       time.Time
	reschedule func(after time.Time) time.Time
}

// NewJob создаёт задание: first — первый запуск, reschedule — следующий
// момент после запуска.
func NewJob(name string, run func(ctx context.Context) error, first time.Time, reschedule func(after time.Time) time.Time) *Job {
	return &Job{Name: name, Run: run, next: first, reschedule: reschedule}
}

// DailyAt возвращает правило "каждый день в HH:MM" в указанной зоне.
func DailyAt(hour, minute int, loc *time.Location) func(after time.Time) time.Time {
	return func(after time.Time) time.Time {
		local := after.In(loc)
		next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
		if !next.After(after) {
			next = next.AddDate(0, 0, 1)
		}
		return next
	}
}

// Every возвращает правило "через каждый интервал".
func Every(interval time.Duration) func(after time.Time) time.Time {
	return func(after time.Time) time.Time {
		return after.Add(interval)
	}
}

// Service — кооперативный однопоточный планировщик. Задания хранятся
// отсортированными по ближайшему дедлайну; цикл спит до ближайшего,
// выполняет просроченные синхронно и перепланирует их. Задание,
// пропустившее срок пока шло другое, выполняется при следующем
// пробуждении один раз, без догоняющей очереди.
type Service struct {
	jobs []*Job
	log  zerolog.Logger
	now  func() time.Time
}

// NewService создаёт планировщик.
func NewService(logger zerolog.Logger) *Service {
	return &Service{log: logger, now: time.Now}
}

// WithClock подменяет источник времени.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Add регистрирует задание.
func (s *Service) Add(job *Job) {
	s.jobs = append(s.jobs, job)
	s.sortJobs()
}

// Next возвращает ближайший дедлайн. Нужен в основном тестам.
func (s *Service) Next() (time.Time, bool) {
	if len(s.jobs) == 0 {
		return time.Time{}, false
	}
	return s.jobs[0].next, true
}

// Tick выполняет все просроченные на момент now задания и перепланирует их.
// Возвращает число выполненных заданий.
func (s *Service) Tick(ctx context.Context, now time.Time) int {
	ran := 0
	for _, job := range s.jobs {
		if job.next.After(now) {
			break
		}
		s.runJob(ctx, job)
		job.next = job.reschedule(s.now())
		ran++
	}
	if ran > 0 {
		s.sortJobs()
	}
	return ran
}

// Run крутит цикл планирования до отмены контекста.
func (s *Service) Run(ctx context.Context) {
	for {
		next, ok := s.Next()
		if !ok {
			s.log.Warn().Msg("scheduler: нет заданий, выходим")
			return
		}
		wait := next.Sub(s.now())
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				s.log.Info().Msg("scheduler: остановка по сигналу")
				return
			case <-timer.C:
			}
		}
		if ctx.Err() != nil {
			return
		}
		s.Tick(ctx, s.now())
	}
}

// runJob выполняет задание синхронно; ни ошибка, ни паника задания
// не останавливают цикл.
func (s *Service) runJob(ctx context.Context, job *Job) {
	runID := uuid.NewString()
	logger := s.log.With().Str("job", job.Name).Str("run_id", runID).Logger()
	started := s.now()
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Any("panic", r).Msg("scheduler: паника в задании")
		}
	}()
	logger.Info().Msg("scheduler: запуск задания")
	if err := job.Run(ctx); err != nil {
		logger.Error().Err(err).Dur("took", s.now().Sub(started)).Msg("scheduler: задание завершилось с ошибкой")
		return
	}
	logger.Info().Dur("took", s.now().Sub(started)).Msg("scheduler: задание выполнено")
}

func (s *Service) sortJobs() {
	sort.SliceStable(s.jobs, func(i, j int) bool { return s.jobs[i].next.Before(s.jobs[j].next) })
}
