package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/elethan/lina/internal/model"
	"github.com/elethan/lina/internal/repository"
)

// ── Mock RequestRepository ──

type mockRequestRepo struct {
	requests  map[int]*model.Request
	serials   map[int]string    // asset_id → serial_number
	engineers *mockEngineerRepo // 用于拼接工程师姓名
	nextID    int
	calls     int
	err       error
}

func newMockRequestRepo(engineers *mockEngineerRepo) *mockRequestRepo {
	return &mockRequestRepo{
		requests:  make(map[int]*model.Request),
		serials:   make(map[int]string),
		engineers: engineers,
		nextID:    1,
	}
}

func (m *mockRequestRepo) add(r *model.Request) {
	if r.Status == "" {
		r.Status = model.StatusOpen
	}
	m.requests[r.RequestID] = r
	if r.RequestID >= m.nextID {
		m.nextID = r.RequestID + 1
	}
}

func (m *mockRequestRepo) sortedIDs() []int {
	ids := make([]int, 0, len(m.requests))
	for id := range m.requests {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (m *mockRequestRepo) Create(_ context.Context, req *model.Request) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	req.RequestID = m.nextID
	m.add(req)
	return nil
}

func (m *mockRequestRepo) GetByID(_ context.Context, id int) (*model.Request, error) {
	m.calls++
	if r, ok := m.requests[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRequestRepo) ListWithContext(_ context.Context) ([]repository.RequestRow, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var rows []repository.RequestRow
	for _, id := range m.sortedIDs() {
		r := m.requests[id]
		row := repository.RequestRow{
			RequestID:   r.RequestID,
			SystemID:    r.SystemID,
			EngineerID:  r.EngineerID,
			ReportedBy:  r.ReportedBy,
			CommentText: r.CommentText,
			Status:      r.Status,
		}
		if r.AssetID != nil {
			if serial, ok := m.serials[*r.AssetID]; ok {
				row.SerialNumber = &serial
			}
		}
		if r.EngineerID != nil && m.engineers != nil {
			if e, ok := m.engineers.engineers[*r.EngineerID]; ok {
				// 与 LEFT JOIN 扫描一致：工程师存在时名、姓总是非 nil
				first, last := e.FirstName, e.LastName
				row.EngineerFirstName = &first
				row.EngineerLastName = &last
			}
		}
		created := r.CreatedAt
		row.CreatedAt = &created
		rows = append(rows, row)
	}
	return rows, nil
}

func (m *mockRequestRepo) ListByIDs(_ context.Context, ids []int) ([]model.Request, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []model.Request
	for _, id := range m.sortedIDs() {
		if want[id] {
			out = append(out, *m.requests[id])
		}
	}
	return out, nil
}

func (m *mockRequestRepo) AssignEngineer(_ context.Context, ids []int, engineerID int) (int64, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	var affected int64
	seen := make(map[int]bool)
	for _, id := range ids {
		if r, ok := m.requests[id]; ok && !seen[id] {
			seen[id] = true
			eid := engineerID
			r.EngineerID = &eid
			affected++
		}
	}
	return affected, nil
}

// ── Mock WorkOrderRepository ──

type mockWorkOrderRepo struct {
	workOrders map[int]*model.WorkOrder
	links      []model.WorkOrderRequest
	engLinks   []model.WorkOrderEngineer
	engineers  *mockEngineerRepo
	nextID     int
	err        error
}

func newMockWorkOrderRepo(engineers *mockEngineerRepo) *mockWorkOrderRepo {
	return &mockWorkOrderRepo{
		workOrders: make(map[int]*model.WorkOrder),
		engineers:  engineers,
		nextID:     1,
	}
}

func (m *mockWorkOrderRepo) sortedIDs() []int {
	ids := make([]int, 0, len(m.workOrders))
	for id := range m.workOrders {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (m *mockWorkOrderRepo) Create(_ context.Context, wo *model.WorkOrder) error {
	if m.err != nil {
		return m.err
	}
	wo.WorkOrderID = m.nextID
	m.nextID++
	m.workOrders[wo.WorkOrderID] = wo
	return nil
}

func (m *mockWorkOrderRepo) GetByID(_ context.Context, id int) (*model.WorkOrder, error) {
	if wo, ok := m.workOrders[id]; ok {
		cp := *wo
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkOrderRepo) ListWithContext(_ context.Context) ([]repository.WorkOrderRow, error) {
	if m.err != nil {
		return nil, m.err
	}
	var rows []repository.WorkOrderRow
	for _, id := range m.sortedIDs() {
		wo := m.workOrders[id]
		start := wo.StartAt
		rows = append(rows, repository.WorkOrderRow{
			WorkOrderID: wo.WorkOrderID,
			Description: wo.Description,
			Status:      wo.Status,
			StartAt:     &start,
			EndAt:       wo.EndAt,
		})
	}
	return rows, nil
}

func (m *mockWorkOrderRepo) CountRequests(_ context.Context) ([]repository.WorkOrderRequestCount, error) {
	counts := make(map[int]int64)
	for _, l := range m.links {
		counts[l.WorkOrderID]++
	}
	var out []repository.WorkOrderRequestCount
	for id, c := range counts {
		out = append(out, repository.WorkOrderRequestCount{WorkOrderID: id, RequestCount: c})
	}
	return out, nil
}

func (m *mockWorkOrderRepo) ListEngineerNames(_ context.Context) ([]repository.WorkOrderEngineerName, error) {
	var out []repository.WorkOrderEngineerName
	for _, id := range m.sortedIDs() {
		var engIDs []int
		for _, l := range m.engLinks {
			if l.WorkOrderID == id {
				engIDs = append(engIDs, l.EngineerID)
			}
		}
		sort.Ints(engIDs)
		if len(engIDs) == 0 {
			out = append(out, repository.WorkOrderEngineerName{WorkOrderID: id})
			continue
		}
		for _, eid := range engIDs {
			row := repository.WorkOrderEngineerName{WorkOrderID: id}
			if e, ok := m.engineers.engineers[eid]; ok {
				first, last := e.FirstName, e.LastName
				if first != "" {
					row.FirstName = &first
				}
				if last != "" {
					row.LastName = &last
				}
			}
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *mockWorkOrderRepo) LinkRequests(_ context.Context, woID int, requestIDs []int) error {
	if m.err != nil {
		return m.err
	}
	for _, id := range requestIDs {
		m.links = append(m.links, model.WorkOrderRequest{WorkOrderID: woID, RequestID: id})
	}
	return nil
}

func (m *mockWorkOrderRepo) ListRequestIDs(_ context.Context, woID int) ([]int, error) {
	var ids []int
	for _, l := range m.links {
		if l.WorkOrderID == woID {
			ids = append(ids, l.RequestID)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (m *mockWorkOrderRepo) UpdateStatus(_ context.Context, woID int, status string, endAt *time.Time) error {
	wo, ok := m.workOrders[woID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	wo.Status = status
	wo.EndAt = endAt
	return nil
}

func (m *mockWorkOrderRepo) ReplaceEngineers(_ context.Context, woID int, engineerIDs []int) error {
	kept := m.engLinks[:0]
	for _, l := range m.engLinks {
		if l.WorkOrderID != woID {
			kept = append(kept, l)
		}
	}
	m.engLinks = kept
	for _, id := range engineerIDs {
		m.engLinks = append(m.engLinks, model.WorkOrderEngineer{WorkOrderID: woID, EngineerID: id})
	}
	return nil
}

func (m *mockWorkOrderRepo) ListEngineerIDs(_ context.Context, woID int) ([]int, error) {
	var ids []int
	for _, l := range m.engLinks {
		if l.WorkOrderID == woID {
			ids = append(ids, l.EngineerID)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

// ── Mock EngineerRepository ──

type mockEngineerRepo struct {
	engineers map[int]*model.Engineer
}

func newMockEngineerRepo() *mockEngineerRepo {
	return &mockEngineerRepo{engineers: make(map[int]*model.Engineer)}
}

func (m *mockEngineerRepo) List(_ context.Context) ([]model.Engineer, error) {
	ids := make([]int, 0, len(m.engineers))
	for id := range m.engineers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	var out []model.Engineer
	for _, id := range ids {
		out = append(out, *m.engineers[id])
	}
	return out, nil
}

func (m *mockEngineerRepo) GetByID(_ context.Context, id int) (*model.Engineer, error) {
	if e, ok := m.engineers[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEngineerRepo) CountByIDs(_ context.Context, ids []int) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := m.engineers[id]; ok {
			n++
		}
	}
	return n, nil
}

// ── Mock AssetRepository / SiteRepository / SystemRepository ──

type mockAssetRepo struct {
	assets []model.Asset
	links  []repository.AssetSystemName
}

func newMockAssetRepo() *mockAssetRepo { return &mockAssetRepo{} }

func (m *mockAssetRepo) Create(_ context.Context, asset *model.Asset) error {
	asset.AssetID = len(m.assets) + 1
	m.assets = append(m.assets, *asset)
	return nil
}

func (m *mockAssetRepo) List(_ context.Context) ([]model.Asset, error) {
	return m.assets, nil
}

func (m *mockAssetRepo) ListSystemLinks(_ context.Context) ([]repository.AssetSystemName, error) {
	return m.links, nil
}

func (m *mockAssetRepo) LinkSystems(_ context.Context, assetID int, systemIDs []int) error {
	for _, id := range systemIDs {
		m.links = append(m.links, repository.AssetSystemName{AssetID: assetID, SystemID: id})
	}
	return nil
}

type mockSiteRepo struct{ sites []model.Site }

func (m *mockSiteRepo) Create(_ context.Context, site *model.Site) error {
	site.SiteID = len(m.sites) + 1
	m.sites = append(m.sites, *site)
	return nil
}

func (m *mockSiteRepo) List(_ context.Context) ([]model.Site, error) { return m.sites, nil }

type mockSystemRepo struct{ systems []model.System }

func (m *mockSystemRepo) Create(_ context.Context, system *model.System) error {
	system.SystemID = len(m.systems) + 1
	m.systems = append(m.systems, *system)
	return nil
}

func (m *mockSystemRepo) List(_ context.Context) ([]model.System, error) { return m.systems, nil }

// ── Mock PMRepository ──

type mockPMRepo struct {
	tasks       []model.PMTask
	completions []repository.LastCompletion
}

func (m *mockPMRepo) CreateTask(_ context.Context, task *model.PMTask) error {
	task.TaskID = len(m.tasks) + 1
	m.tasks = append(m.tasks, *task)
	return nil
}

func (m *mockPMRepo) ListTasks(_ context.Context, systemID *int) ([]model.PMTask, error) {
	var out []model.PMTask
	for _, t := range m.tasks {
		if systemID != nil && (t.SystemID == nil || *t.SystemID != *systemID) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *mockPMRepo) CreateInstance(_ context.Context, _ *model.AssetPM) error { return nil }

func (m *mockPMRepo) LastCompletedByAsset(_ context.Context) ([]repository.LastCompletion, error) {
	return m.completions, nil
}

// ── Mock UserRepository / AccountRepository / SessionRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	user.Email = repository.NormalizeEmail(user.Email)
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	email = repository.NormalizeEmail(email)
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type mockAccountRepo struct {
	accounts map[string]*model.Account // user_id → credential
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{accounts: make(map[string]*model.Account)}
}

func (m *mockAccountRepo) Create(_ context.Context, account *model.Account) error {
	m.accounts[account.UserID] = account
	return nil
}

func (m *mockAccountRepo) GetCredential(_ context.Context, userID string) (*model.Account, error) {
	if a, ok := m.accounts[userID]; ok && a.ProviderID == model.ProviderCredential {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type mockSessionRepo struct {
	sessions map[string]*model.Session
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.Session)}
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.Session) error {
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *mockSessionRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, s := range m.sessions {
		if s.ExpiresAt.Before(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// ── Mock RolePermissionRepository ──

type mockRolePermissionRepo struct {
	perms map[model.RolePermission]bool
	err   error
}

func newMockRolePermissionRepo() *mockRolePermissionRepo {
	return &mockRolePermissionRepo{perms: make(map[model.RolePermission]bool)}
}

func (m *mockRolePermissionRepo) Has(_ context.Context, role, resource, action string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.perms[model.RolePermission{Role: role, Resource: resource, Action: action}], nil
}

func (m *mockRolePermissionRepo) BatchUpsert(_ context.Context, perms []model.RolePermission) error {
	for _, p := range perms {
		m.perms[p] = true
	}
	return nil
}

// ── 聚合 ──

type mockRepos struct {
	request   *mockRequestRepo
	workOrder *mockWorkOrderRepo
	engineer  *mockEngineerRepo
	asset     *mockAssetRepo
	site      *mockSiteRepo
	system    *mockSystemRepo
	pm        *mockPMRepo
	user      *mockUserRepo
	account   *mockAccountRepo
	session   *mockSessionRepo
	perm      *mockRolePermissionRepo
}

// newMockRepository 组装未绑定数据库的 Repository，Transaction 直接执行回调
func newMockRepository() (*repository.Repository, *mockRepos) {
	eng := newMockEngineerRepo()
	m := &mockRepos{
		request:   newMockRequestRepo(eng),
		workOrder: newMockWorkOrderRepo(eng),
		engineer:  eng,
		asset:     newMockAssetRepo(),
		site:      &mockSiteRepo{},
		system:    &mockSystemRepo{},
		pm:        &mockPMRepo{},
		user:      newMockUserRepo(),
		account:   newMockAccountRepo(),
		session:   newMockSessionRepo(),
		perm:      newMockRolePermissionRepo(),
	}
	repo := &repository.Repository{
		Request:        m.request,
		WorkOrder:      m.workOrder,
		Engineer:       m.engineer,
		Asset:          m.asset,
		Site:           m.site,
		System:         m.system,
		PM:             m.pm,
		User:           m.user,
		Account:        m.account,
		Session:        m.session,
		RolePermission: m.perm,
	}
	return repo, m
}
