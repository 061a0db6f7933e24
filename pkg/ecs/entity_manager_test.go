package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

type testHealthComponent struct {
	Current float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if em.EntityCount() != 2 {
		t.Errorf("Expected 2 entities, got %d", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testPositionComponent{X: 100, Y: 200})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}

	// 泛型接口与反射接口共享同一份存储
	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok || pos != retrieved {
		t.Error("Generic GetComponent should return the same pointer")
	}
}

func TestDeferredDestroy(t *testing.T) {
	t.Run("标记后实体仍然存在", func(t *testing.T) {
		em := NewEntityManager()
		id := em.CreateEntity()
		AddComponent(em, id, &testPositionComponent{})

		em.DestroyEntity(id)
		if !em.Exists(id) {
			t.Error("Entity should still exist before RemoveMarkedEntities")
		}
		if !em.IsMarkedForDestroy(id) {
			t.Error("Entity should be marked for destroy")
		}

		removed := em.RemoveMarkedEntities()
		if len(removed) != 1 || removed[0] != id {
			t.Errorf("Expected [%d] removed, got %v", id, removed)
		}
		if em.Exists(id) {
			t.Error("Entity should be gone after RemoveMarkedEntities")
		}
	})

	t.Run("重复标记只删除一次", func(t *testing.T) {
		em := NewEntityManager()
		id := em.CreateEntity()
		em.DestroyEntity(id)
		em.DestroyEntity(id)

		removed := em.RemoveMarkedEntities()
		if len(removed) != 1 {
			t.Errorf("Expected 1 removed entity, got %d", len(removed))
		}
	})

	t.Run("标记不存在的实体无效果", func(t *testing.T) {
		em := NewEntityManager()
		em.DestroyEntity(42)
		if removed := em.RemoveMarkedEntities(); len(removed) != 0 {
			t.Errorf("Expected nothing removed, got %v", removed)
		}
	})
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	e1 := em.CreateEntity()
	AddComponent(em, e1, &testPositionComponent{})
	AddComponent(em, e1, &testVelocityComponent{})

	e2 := em.CreateEntity()
	AddComponent(em, e2, &testPositionComponent{})

	e3 := em.CreateEntity()
	AddComponent(em, e3, &testPositionComponent{})
	AddComponent(em, e3, &testVelocityComponent{})
	AddComponent(em, e3, &testHealthComponent{})

	t.Run("单组件查询按ID升序", func(t *testing.T) {
		got := GetEntitiesWith1[*testPositionComponent](em)
		want := []EntityID{e1, e2, e3}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})

	t.Run("双组件查询", func(t *testing.T) {
		got := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
		want := []EntityID{e1, e3}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})

	t.Run("三组件查询", func(t *testing.T) {
		got := GetEntitiesWith3[*testPositionComponent, *testVelocityComponent, *testHealthComponent](em)
		if len(got) != 1 || got[0] != e3 {
			t.Errorf("Expected [%d], got %v", e3, got)
		}
	})

	t.Run("移除组件后不再匹配", func(t *testing.T) {
		RemoveComponent[*testVelocityComponent](em, e1)
		if HasComponent[*testVelocityComponent](em, e1) {
			t.Error("Velocity should be removed from e1")
		}
		got := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
		if len(got) != 1 || got[0] != e3 {
			t.Errorf("Expected [%d], got %v", e3, got)
		}
	})
}

func TestAddComponentToMissingEntity(t *testing.T) {
	em := NewEntityManager()
	AddComponent(em, 99, &testPositionComponent{})
	if _, ok := GetComponent[*testPositionComponent](em, 99); ok {
		t.Error("Components should not attach to unknown entities")
	}
}
