package service

import (
	"strings"
	"time"

	"github.com/vqhuy/librarian/data"
	"github.com/vqhuy/librarian/repository"
)

// mockRepo is an in-memory stand-in for the repository layer. It mimics the
// SQL repository's observable behavior: the guarded availability decrement,
// version bumps on updates and the sentinel errors.
type mockRepo struct {
	books       map[int64]*data.Book
	members     map[int64]*data.Member
	borrows     map[int64]*data.Borrow
	receipts    map[int64]*data.FineReceipt
	rules       map[int64]*data.Rule
	reports     map[int64]*data.Report
	copies      map[int64]*data.BookCopy
	borrowStats []*data.BorrowStat
	lateReturns []*data.LateReturnStat
	statsStart  time.Time
	statsEnd    time.Time
	nextID      int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		books:    make(map[int64]*data.Book),
		members:  make(map[int64]*data.Member),
		borrows:  make(map[int64]*data.Borrow),
		receipts: make(map[int64]*data.FineReceipt),
		rules:    make(map[int64]*data.Rule),
		reports:  make(map[int64]*data.Report),
		copies:   make(map[int64]*data.BookCopy),
	}
}

func (m *mockRepo) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *mockRepo) CreateBook(book *data.Book) error {
	for _, other := range m.books {
		if other.BookCode == book.BookCode {
			return repository.ErrDuplicateRecord
		}
	}
	book.ID = m.id()
	book.CreatedAt = time.Now()
	book.Version = 1
	copied := *book
	m.books[book.ID] = &copied
	return nil
}

func (m *mockRepo) GetBook(bookID int64) (*data.Book, error) {
	book, ok := m.books[bookID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	copied := *book
	copied.DeriveStatus()
	return &copied, nil
}

func (m *mockRepo) GetAllBooks() ([]*data.Book, error) {
	books := []*data.Book{}
	for _, book := range m.books {
		copied := *book
		copied.DeriveStatus()
		books = append(books, &copied)
	}
	return books, nil
}

func (m *mockRepo) SearchBooks(query string) ([]*data.Book, error) {
	books := []*data.Book{}
	for _, book := range m.books {
		if strings.Contains(strings.ToLower(book.Title), strings.ToLower(query)) ||
			strings.Contains(strings.ToLower(book.BookCode), strings.ToLower(query)) {
			copied := *book
			copied.DeriveStatus()
			books = append(books, &copied)
		}
	}
	return books, nil
}

func (m *mockRepo) UpdateBook(book *data.Book) error {
	stored, ok := m.books[book.ID]
	if !ok || stored.Version != book.Version {
		return repository.ErrEditConflict
	}
	book.Version++
	copied := *book
	m.books[book.ID] = &copied
	return nil
}

func (m *mockRepo) DeleteBook(bookID int64) error {
	if _, ok := m.books[bookID]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(m.books, bookID)
	return nil
}

func (m *mockRepo) CountBorrowedCopies(bookID int64) (int64, error) {
	var count int64
	for _, borrow := range m.borrows {
		if borrow.BookID == bookID && borrow.ReturnDate == nil {
			count += int64(borrow.Quantity)
		}
	}
	return count, nil
}

func (m *mockRepo) CreateMember(member *data.Member) error {
	for _, other := range m.members {
		if other.Email == member.Email {
			return repository.ErrDuplicateRecord
		}
	}
	member.ID = m.id()
	member.CreatedAt = time.Now()
	member.Version = 1
	copied := *member
	m.members[member.ID] = &copied
	return nil
}

func (m *mockRepo) GetMember(memberID int64) (*data.Member, error) {
	member, ok := m.members[memberID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	copied := *member
	return &copied, nil
}

func (m *mockRepo) GetAllMembers() ([]*data.Member, error) {
	members := []*data.Member{}
	for _, member := range m.members {
		copied := *member
		members = append(members, &copied)
	}
	return members, nil
}

func (m *mockRepo) SearchMembers(query string) ([]*data.Member, error) {
	members := []*data.Member{}
	for _, member := range m.members {
		if strings.Contains(strings.ToLower(member.FullName), strings.ToLower(query)) {
			copied := *member
			members = append(members, &copied)
		}
	}
	return members, nil
}

func (m *mockRepo) UpdateMember(member *data.Member) error {
	stored, ok := m.members[member.ID]
	if !ok || stored.Version != member.Version {
		return repository.ErrEditConflict
	}
	member.Version++
	copied := *member
	m.members[member.ID] = &copied
	return nil
}

func (m *mockRepo) DeleteMember(memberID int64) error {
	if _, ok := m.members[memberID]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(m.members, memberID)
	return nil
}

func (m *mockRepo) GetMemberStats(memberID int64) (*data.MemberStats, error) {
	stats := &data.MemberStats{}
	now := time.Now()
	for _, borrow := range m.borrows {
		if borrow.MemberID != memberID {
			continue
		}
		stats.TotalBorrows++
		if borrow.ReturnDate == nil {
			stats.ActiveBorrows++
			if now.After(borrow.DueDate) {
				stats.OverdueBorrows++
			}
		}
	}
	for _, receipt := range m.receipts {
		if receipt.MemberID != memberID {
			continue
		}
		stats.TotalFines += receipt.Amount
		if receipt.Status == data.FineStatusPending {
			stats.UnpaidFines += receipt.Amount
		}
	}
	return stats, nil
}

func (m *mockRepo) CountActiveBorrows(memberID int64) (int64, error) {
	var count int64
	for _, borrow := range m.borrows {
		if borrow.MemberID == memberID && borrow.ReturnDate == nil {
			count++
		}
	}
	return count, nil
}

func (m *mockRepo) CountPendingFines(memberID int64) (int64, error) {
	var count int64
	for _, receipt := range m.receipts {
		if receipt.MemberID == memberID && receipt.Status == data.FineStatusPending {
			count++
		}
	}
	return count, nil
}

func (m *mockRepo) CreateBorrow(borrow *data.Borrow) error {
	book, ok := m.books[borrow.BookID]
	if !ok {
		return repository.ErrRecordNotFound
	}
	if book.AvailableQuantity < borrow.Quantity {
		return repository.ErrUnavailable
	}
	book.AvailableQuantity -= borrow.Quantity
	book.Version++
	borrow.ID = m.id()
	borrow.CreatedAt = time.Now()
	borrow.Version = 1
	copied := *borrow
	m.borrows[borrow.ID] = &copied
	return nil
}

func (m *mockRepo) getBorrowCopy(borrow *data.Borrow) *data.Borrow {
	copied := *borrow
	if member, ok := m.members[borrow.MemberID]; ok {
		copied.Member = &data.MemberSummary{ID: member.ID, FullName: member.FullName, Email: member.Email, Phone: member.Phone}
	}
	if book, ok := m.books[borrow.BookID]; ok {
		copied.Book = &data.BookSummary{ID: book.ID, BookCode: book.BookCode, Title: book.Title, Category: book.Category, Authors: book.Authors}
	}
	copied.Status = copied.DeriveStatus(time.Now())
	return &copied
}

func (m *mockRepo) GetBorrow(borrowID int64) (*data.Borrow, error) {
	borrow, ok := m.borrows[borrowID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return m.getBorrowCopy(borrow), nil
}

func (m *mockRepo) GetAllBorrows() ([]*data.Borrow, error) {
	borrows := []*data.Borrow{}
	for _, borrow := range m.borrows {
		borrows = append(borrows, m.getBorrowCopy(borrow))
	}
	return borrows, nil
}

func (m *mockRepo) GetMemberBorrows(memberID int64) ([]*data.Borrow, error) {
	borrows := []*data.Borrow{}
	for _, borrow := range m.borrows {
		if borrow.MemberID == memberID {
			borrows = append(borrows, m.getBorrowCopy(borrow))
		}
	}
	return borrows, nil
}

func (m *mockRepo) GetBookBorrows(bookID int64) ([]*data.Borrow, error) {
	borrows := []*data.Borrow{}
	for _, borrow := range m.borrows {
		if borrow.BookID == bookID {
			borrows = append(borrows, m.getBorrowCopy(borrow))
		}
	}
	return borrows, nil
}

func (m *mockRepo) GetOverdueBorrows() ([]*data.Borrow, error) {
	now := time.Now()
	borrows := []*data.Borrow{}
	for _, borrow := range m.borrows {
		if borrow.ReturnDate == nil && now.After(borrow.DueDate) {
			borrows = append(borrows, m.getBorrowCopy(borrow))
		}
	}
	return borrows, nil
}

func (m *mockRepo) ReturnBorrow(borrow *data.Borrow, receipt *data.FineReceipt) error {
	stored, ok := m.borrows[borrow.ID]
	if !ok || stored.Version != borrow.Version || stored.ReturnDate != nil {
		return repository.ErrEditConflict
	}
	stored.ReturnDate = borrow.ReturnDate
	stored.Fine = borrow.Fine
	stored.Version++
	borrow.Version = stored.Version
	if book, ok := m.books[borrow.BookID]; ok {
		book.AvailableQuantity += borrow.Quantity
		book.Version++
	}
	if receipt != nil {
		receipt.ID = m.id()
		receipt.CreatedAt = time.Now()
		receipt.Version = 1
		copied := *receipt
		m.receipts[receipt.ID] = &copied
	}
	return nil
}

func (m *mockRepo) UpdateBorrowPaid(borrow *data.Borrow) error {
	stored, ok := m.borrows[borrow.ID]
	if !ok || stored.Version != borrow.Version {
		return repository.ErrEditConflict
	}
	stored.Paid = borrow.Paid
	stored.Version++
	borrow.Version = stored.Version
	return nil
}

func (m *mockRepo) CreateFineReceipt(receipt *data.FineReceipt) error {
	receipt.ID = m.id()
	receipt.CreatedAt = time.Now()
	receipt.Version = 1
	copied := *receipt
	m.receipts[receipt.ID] = &copied
	return nil
}

func (m *mockRepo) GetFineReceipt(receiptID int64) (*data.FineReceipt, error) {
	receipt, ok := m.receipts[receiptID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	copied := *receipt
	return &copied, nil
}

func (m *mockRepo) GetAllFineReceipts() ([]*data.FineReceipt, error) {
	receipts := []*data.FineReceipt{}
	for _, receipt := range m.receipts {
		copied := *receipt
		receipts = append(receipts, &copied)
	}
	return receipts, nil
}

func (m *mockRepo) GetMemberFineReceipts(memberID int64) ([]*data.FineReceipt, error) {
	receipts := []*data.FineReceipt{}
	for _, receipt := range m.receipts {
		if receipt.MemberID == memberID {
			copied := *receipt
			receipts = append(receipts, &copied)
		}
	}
	return receipts, nil
}

func (m *mockRepo) GetUnpaidFineReceipts() ([]*data.FineReceipt, error) {
	receipts := []*data.FineReceipt{}
	for _, receipt := range m.receipts {
		if receipt.Status == data.FineStatusPending {
			copied := *receipt
			receipts = append(receipts, &copied)
		}
	}
	return receipts, nil
}

func (m *mockRepo) UpdateFineReceipt(receipt *data.FineReceipt) error {
	stored, ok := m.receipts[receipt.ID]
	if !ok || stored.Version != receipt.Version {
		return repository.ErrEditConflict
	}
	receipt.Version++
	copied := *receipt
	m.receipts[receipt.ID] = &copied
	return nil
}

func (m *mockRepo) GetFineReceiptStats() (*data.FineReceiptStats, error) {
	stats := &data.FineReceiptStats{}
	for _, receipt := range m.receipts {
		stats.Total += receipt.Amount
		switch receipt.Status {
		case data.FineStatusPaid:
			stats.Paid += receipt.Amount
		case data.FineStatusPending:
			stats.Pending += receipt.Amount
		case data.FineStatusCancelled:
			stats.Cancelled += receipt.Amount
		}
	}
	return stats, nil
}

func (m *mockRepo) CreateRule(rule *data.Rule) error {
	for _, other := range m.rules {
		if other.Name == rule.Name {
			return repository.ErrDuplicateRecord
		}
	}
	rule.ID = m.id()
	rule.CreatedAt = time.Now()
	rule.Version = 1
	copied := *rule
	m.rules[rule.ID] = &copied
	return nil
}

func (m *mockRepo) GetRule(ruleID int64) (*data.Rule, error) {
	rule, ok := m.rules[ruleID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	copied := *rule
	return &copied, nil
}

func (m *mockRepo) GetRuleByName(name string) (*data.Rule, error) {
	for _, rule := range m.rules {
		if rule.Name == name {
			copied := *rule
			return &copied, nil
		}
	}
	return nil, repository.ErrRecordNotFound
}

func (m *mockRepo) GetAllRules() ([]*data.Rule, error) {
	rules := []*data.Rule{}
	for _, rule := range m.rules {
		copied := *rule
		rules = append(rules, &copied)
	}
	return rules, nil
}

func (m *mockRepo) GetActiveRules() ([]*data.Rule, error) {
	now := time.Now()
	rules := []*data.Rule{}
	for _, rule := range m.rules {
		if rule.IsActive && !rule.EffectiveDate.After(now) && (rule.ExpiryDate == nil || rule.ExpiryDate.After(now)) {
			copied := *rule
			rules = append(rules, &copied)
		}
	}
	return rules, nil
}

func (m *mockRepo) UpdateRule(rule *data.Rule) error {
	stored, ok := m.rules[rule.ID]
	if !ok || stored.Version != rule.Version {
		return repository.ErrEditConflict
	}
	rule.Version++
	copied := *rule
	m.rules[rule.ID] = &copied
	return nil
}

func (m *mockRepo) DeleteRule(ruleID int64) error {
	if _, ok := m.rules[ruleID]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(m.rules, ruleID)
	return nil
}

func (m *mockRepo) CreateReport(report *data.Report) error {
	report.ID = m.id()
	report.CreatedAt = time.Now()
	report.Version = 1
	copied := *report
	m.reports[report.ID] = &copied
	return nil
}

func (m *mockRepo) GetReport(reportID int64) (*data.Report, error) {
	report, ok := m.reports[reportID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	copied := *report
	return &copied, nil
}

func (m *mockRepo) GetAllReports() ([]*data.Report, error) {
	reports := []*data.Report{}
	for _, report := range m.reports {
		copied := *report
		reports = append(reports, &copied)
	}
	return reports, nil
}

func (m *mockRepo) GetReportsByType(reportType string) ([]*data.Report, error) {
	reports := []*data.Report{}
	for _, report := range m.reports {
		if report.Type == reportType {
			copied := *report
			reports = append(reports, &copied)
		}
	}
	return reports, nil
}

func (m *mockRepo) GetReportsByDateRange(start, end time.Time) ([]*data.Report, error) {
	reports := []*data.Report{}
	for _, report := range m.reports {
		if !report.StartDate.After(end) && !report.EndDate.Before(start) {
			copied := *report
			reports = append(reports, &copied)
		}
	}
	return reports, nil
}

func (m *mockRepo) UpdateReport(report *data.Report) error {
	stored, ok := m.reports[report.ID]
	if !ok || stored.Version != report.Version {
		return repository.ErrEditConflict
	}
	report.Version++
	copied := *report
	m.reports[report.ID] = &copied
	return nil
}

func (m *mockRepo) DeleteReport(reportID int64) error {
	if _, ok := m.reports[reportID]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(m.reports, reportID)
	return nil
}

func (m *mockRepo) GenerateReportData(start, end time.Time) (*data.ReportData, error) {
	reportData := &data.ReportData{
		TotalBooks:      int64(len(m.books)),
		TotalMembers:    int64(len(m.members)),
		CategoryStats:   []data.CategoryCount{},
		MemberTypeStats: []data.MemberTypeCount{},
	}
	for _, borrow := range m.borrows {
		if !borrow.BorrowDate.Before(start) && borrow.BorrowDate.Before(end) {
			reportData.TotalBorrows++
		}
		if borrow.ReturnDate != nil && !borrow.ReturnDate.Before(start) && borrow.ReturnDate.Before(end) {
			reportData.TotalReturns++
		}
	}
	return reportData, nil
}

func (m *mockRepo) GetBorrowStats(start, end time.Time) ([]*data.BorrowStat, error) {
	m.statsStart, m.statsEnd = start, end
	return m.borrowStats, nil
}

func (m *mockRepo) GetLateReturns(start, end time.Time) ([]*data.LateReturnStat, error) {
	m.statsStart, m.statsEnd = start, end
	return m.lateReturns, nil
}

func (m *mockRepo) CreateBookCopies(bookID int64, count int32) ([]*data.BookCopy, error) {
	var maxNumber int32
	for _, copy := range m.copies {
		if copy.BookID == bookID && copy.CopyNumber > maxNumber {
			maxNumber = copy.CopyNumber
		}
	}
	copies := []*data.BookCopy{}
	for i := int32(1); i <= count; i++ {
		copied := &data.BookCopy{
			ID:         m.id(),
			CreatedAt:  time.Now(),
			BookID:     bookID,
			CopyNumber: maxNumber + i,
			Status:     data.CopyStatusAvailable,
			Version:    1,
		}
		m.copies[copied.ID] = copied
		stored := *copied
		copies = append(copies, &stored)
	}
	return copies, nil
}

func (m *mockRepo) GetBookCopy(copyID int64) (*data.BookCopy, error) {
	copy, ok := m.copies[copyID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	copied := *copy
	return &copied, nil
}

func (m *mockRepo) GetBookCopies(bookID int64) ([]*data.BookCopy, error) {
	copies := []*data.BookCopy{}
	for _, copy := range m.copies {
		if copy.BookID == bookID {
			copied := *copy
			copies = append(copies, &copied)
		}
	}
	return copies, nil
}

func (m *mockRepo) UpdateBookCopy(copy *data.BookCopy) error {
	stored, ok := m.copies[copy.ID]
	if !ok || stored.Version != copy.Version {
		return repository.ErrEditConflict
	}
	copy.Version++
	copied := *copy
	m.copies[copy.ID] = &copied
	return nil
}
